package disk

import (
	"fmt"
	"io/fs"
	"path/filepath"
)

const (
	megabyte = 1 << 20
	gigabyte = 1 << 30
)

// TreeSize walks root and sums the sizes of regular files underneath.
// Individual stat failures contribute zero and never abort the walk.
// known is false only when the tree could not be entered at all, in which
// case the caller should treat the size as unavailable.
func TreeSize(root string) (bytes int64, known bool) {
	known = true

	filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == root {
				known = false
				return filepath.SkipAll
			}
			return nil // skip unreadable entries
		}

		if d.Type().IsRegular() {
			info, err := d.Info()
			if err != nil {
				return nil
			}
			bytes += info.Size()
		}

		return nil
	})

	return bytes, known
}

// FormatSize renders a byte count in megabytes, switching to gigabytes at
// 1 GB, rounded to two decimal places.
func FormatSize(bytes int64) string {
	if bytes >= gigabyte {
		return fmt.Sprintf("%.2f GB", float64(bytes)/float64(gigabyte))
	}
	return fmt.Sprintf("%.2f MB", float64(bytes)/float64(megabyte))
}
