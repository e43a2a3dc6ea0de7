package loader

import (
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
)

// Host returns the operating system filesystem. Absolute names are used as
// given and relative names resolve against the working directory at the
// time of each call, so command line paths behave as they do in a shell.
func Host() billy.Filesystem {
	return hostFS{osfs.New(string(filepath.Separator), osfs.WithBoundOS())}
}

// hostFS resolves every name to an absolute path before handing it to a
// filesystem bound at the root directory.
type hostFS struct {
	billy.Filesystem
}

func abs(name string) string {
	if p, err := filepath.Abs(name); err == nil {
		return p
	}
	return name
}

func (h hostFS) Create(name string) (billy.File, error) {
	return h.Filesystem.Create(abs(name))
}

func (h hostFS) Open(name string) (billy.File, error) {
	return h.Filesystem.Open(abs(name))
}

func (h hostFS) OpenFile(name string, flag int, perm os.FileMode) (billy.File, error) {
	return h.Filesystem.OpenFile(abs(name), flag, perm)
}

func (h hostFS) Stat(name string) (os.FileInfo, error) {
	return h.Filesystem.Stat(abs(name))
}

func (h hostFS) Rename(from, to string) error {
	return h.Filesystem.Rename(abs(from), abs(to))
}

func (h hostFS) Remove(name string) error {
	return h.Filesystem.Remove(abs(name))
}

func (h hostFS) TempFile(dir, prefix string) (billy.File, error) {
	if dir != "" {
		dir = abs(dir)
	}
	return h.Filesystem.TempFile(dir, prefix)
}

func (h hostFS) ReadDir(name string) ([]os.FileInfo, error) {
	return h.Filesystem.ReadDir(abs(name))
}

func (h hostFS) MkdirAll(name string, perm os.FileMode) error {
	return h.Filesystem.MkdirAll(abs(name), perm)
}

func (h hostFS) Lstat(name string) (os.FileInfo, error) {
	return h.Filesystem.Lstat(abs(name))
}

func (h hostFS) Symlink(target, link string) error {
	return h.Filesystem.Symlink(target, abs(link))
}

func (h hostFS) Readlink(link string) (string, error) {
	return h.Filesystem.Readlink(abs(link))
}

func (h hostFS) Chroot(name string) (billy.Filesystem, error) {
	return h.Filesystem.Chroot(abs(name))
}
