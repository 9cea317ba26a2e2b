package ssh

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/pkg/sftp"
	xssh "golang.org/x/crypto/ssh"
)

// PushDir uploads the contents of localDir into remoteDir, creating remote
// directories as needed. Every file is verified against a remote sha256
// check and the local permission bits are re-applied remotely, so submission
// and cleanup scripts stay executable.
func PushDir(ctx context.Context, cli *xssh.Client, sf *sftp.Client, localDir, remoteDir string) error {
	return filepath.WalkDir(localDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		rel, err := filepath.Rel(localDir, p)
		if err != nil {
			return err
		}
		remote := path.Join(remoteDir, filepath.ToSlash(rel))
		if d.IsDir() {
			if err := sf.MkdirAll(remote); err != nil {
				return fmt.Errorf("mkdir remote %s: %w", remote, err)
			}
			return nil
		}
		return pushFile(cli, sf, p, remote)
	})
}

func pushFile(cli *xssh.Client, sf *sftp.Client, localPath, remotePath string) error {
	sum, mode, err := localChecksum(localPath)
	if err != nil {
		return err
	}
	src, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("open local: %w", err)
	}
	defer src.Close()
	dst, err := sf.Create(remotePath)
	if err != nil {
		return fmt.Errorf("create remote %s: %w", remotePath, err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return fmt.Errorf("copy %s: %w", remotePath, err)
	}
	if err := dst.Close(); err != nil {
		return fmt.Errorf("close remote %s: %w", remotePath, err)
	}
	if err := sf.Chmod(remotePath, mode); err != nil {
		return fmt.Errorf("chmod remote %s: %w", remotePath, err)
	}
	if err := verifyRemoteChecksum(cli, remotePath, sum); err != nil {
		_ = sf.Remove(remotePath)
		return err
	}
	return nil
}

func localChecksum(path string) (sum string, mode os.FileMode, err error) {
	f, err := os.Open(path)
	if err != nil {
		return "", 0, err
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return "", 0, err
	}
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", 0, err
	}
	return hex.EncodeToString(h.Sum(nil)), info.Mode().Perm(), nil
}

func verifyRemoteChecksum(cli *xssh.Client, remotePath, expected string) error {
	out, err := RunCommand(cli, fmt.Sprintf("sha256sum %q | cut -d' ' -f1", remotePath))
	if err != nil {
		return fmt.Errorf("remote checksum: %w", err)
	}
	got := strings.TrimSpace(out)
	if got != expected {
		return fmt.Errorf("checksum mismatch for %s: expected %s, got %s", remotePath, expected, got)
	}
	return nil
}
