// Package ops holds offline maintenance routines for the data directory:
// archiving it, restoring an archive, and verifying a restored state blob.
package ops

import (
	"archive/tar"
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vtrpza/todo/internal/blob"
	"github.com/vtrpza/todo/internal/model"
)

// DefaultArchiveName returns a timestamped file name for a new backup.
func DefaultArchiveName(now time.Time) string {
	return fmt.Sprintf("todo-backup-%s.tar.gz", now.Format("20060102-150405"))
}

// Backup writes a gzipped tar of everything under dataDir to archivePath.
// Symlinks are skipped so restores never point outside the target directory.
func Backup(dataDir, archivePath string) error {
	dataDir = filepath.Clean(strings.TrimSpace(dataDir))
	archivePath = filepath.Clean(strings.TrimSpace(archivePath))
	if dataDir == "" || archivePath == "" {
		return fmt.Errorf("data dir and archive path are required")
	}
	info, err := os.Stat(dataDir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("data dir is not a directory: %s", dataDir)
	}
	if err := os.MkdirAll(filepath.Dir(archivePath), 0o755); err != nil {
		return err
	}

	f, err := os.Create(archivePath)
	if err != nil {
		return err
	}
	defer f.Close()

	gz := gzip.NewWriter(f)
	defer gz.Close()

	tw := tar.NewWriter(gz)
	defer tw.Close()

	return filepath.WalkDir(dataDir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if path == dataDir {
			return nil
		}

		rel, err := filepath.Rel(dataDir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if d.Type()&os.ModeSymlink != 0 {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}

		hdr, err := tar.FileInfoHeader(info, "")
		if err != nil {
			return err
		}
		hdr.Name = rel
		if info.IsDir() && !strings.HasSuffix(hdr.Name, "/") {
			hdr.Name += "/"
		}
		if err := tw.WriteHeader(hdr); err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		src, err := os.Open(path)
		if err != nil {
			return err
		}
		defer src.Close()

		_, err = io.Copy(tw, src)
		return err
	})
}

// Restore unpacks archivePath into targetDir. Entry names are sanitized so a
// crafted archive cannot write outside targetDir.
func Restore(archivePath, targetDir string) error {
	archivePath = filepath.Clean(strings.TrimSpace(archivePath))
	targetDir = filepath.Clean(strings.TrimSpace(targetDir))
	if archivePath == "" || targetDir == "" {
		return fmt.Errorf("archive path and target dir are required")
	}
	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		return err
	}

	f, err := os.Open(archivePath)
	if err != nil {
		return err
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return err
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		rel, err := sanitizeEntryName(hdr.Name)
		if err != nil {
			return err
		}
		outPath := filepath.Join(targetDir, rel)

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(outPath, os.FileMode(hdr.Mode)); err != nil {
				return err
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
				return err
			}
			dst, err := os.OpenFile(outPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, os.FileMode(hdr.Mode))
			if err != nil {
				return err
			}
			if _, err := io.Copy(dst, tr); err != nil {
				_ = dst.Close()
				return err
			}
			if err := dst.Close(); err != nil {
				return err
			}
		default:
			// Ignore unsupported entry types.
		}
	}

	return nil
}

// VerifyState decodes the state blob under dataDir and reports what it holds.
// Used after a restore to confirm the archive carried a readable snapshot.
func VerifyState(dataDir string) (VerifyReport, error) {
	path := filepath.Join(dataDir, blob.Key+".json")
	raw, err := os.ReadFile(path)
	if err != nil {
		return VerifyReport{}, err
	}

	var state model.AppState
	if err := json.Unmarshal(raw, &state); err != nil {
		return VerifyReport{}, fmt.Errorf("state blob is not valid JSON: %w", err)
	}
	state.Normalize()

	return VerifyReport{
		Tasks:      len(state.Tasks),
		Points:     state.Gamification.Points,
		Level:      state.Gamification.Level,
		Streak:     state.Gamification.Streak,
		Challenges: len(state.Gamification.DailyChallenges),
	}, nil
}

// Drill restores archivePath into a throwaway directory and verifies the
// state blob inside it, leaving the live data dir untouched.
func Drill(archivePath string) (VerifyReport, error) {
	tmp, err := os.MkdirTemp("", "todo-restore-drill-*")
	if err != nil {
		return VerifyReport{}, err
	}
	defer os.RemoveAll(tmp)

	if err := Restore(archivePath, tmp); err != nil {
		return VerifyReport{}, err
	}
	return VerifyState(tmp)
}

type VerifyReport struct {
	Tasks      int
	Points     int
	Level      int
	Streak     int
	Challenges int
}

func sanitizeEntryName(name string) (string, error) {
	name = filepath.Clean(strings.TrimSpace(name))
	if name == "." || name == "" {
		return "", fmt.Errorf("invalid archive entry path")
	}
	if filepath.IsAbs(name) {
		return "", fmt.Errorf("invalid absolute archive entry path: %s", name)
	}
	if name == ".." || strings.HasPrefix(name, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("archive entry escapes target dir: %s", name)
	}
	return name, nil
}
