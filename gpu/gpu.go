// Package gpu looks up DRM devices for render offload.
package gpu

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// ErrDeviceNotFound is returned when no DRM card matches the requested
// vendor. Callers are expected to launch without offload rather than fail.
var ErrDeviceNotFound = errors.New("no matching gpu device")

// testSysfsRoot can be set during tests to point at a fake sysfs tree.
var testSysfsRoot string

var cardPattern = regexp.MustCompile(`^card(\d+)$`)

func sysfsRoot() string {
	if testSysfsRoot != "" {
		return testSysfsRoot
	}
	return "/sys"
}

// Offload returns the DRI_PRIME value selecting the card whose PCI vendor
// id matches vendorID (e.g. "0x1002" for AMD). Cards are checked in index
// order and the first match wins.
func Offload(vendorID string) (string, error) {
	drmDir := filepath.Join(sysfsRoot(), "class", "drm")
	entries, err := os.ReadDir(drmDir)
	if err != nil {
		return "", fmt.Errorf("read drm devices: %w", err)
	}

	var indexes []int
	for _, e := range entries {
		m := cardPattern.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		if idx, err := strconv.Atoi(m[1]); err == nil {
			indexes = append(indexes, idx)
		}
	}
	sort.Ints(indexes)

	want := strings.ToLower(strings.TrimSpace(vendorID))
	for _, idx := range indexes {
		card := fmt.Sprintf("card%d", idx)
		data, err := os.ReadFile(filepath.Join(drmDir, card, "device", "vendor"))
		if err != nil {
			continue
		}
		if strings.ToLower(strings.TrimSpace(string(data))) == want {
			return strconv.Itoa(idx), nil
		}
	}

	return "", fmt.Errorf("vendor %s: %w", vendorID, ErrDeviceNotFound)
}
