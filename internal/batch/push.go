package batch

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pkg/sftp"
	"github.com/rs/zerolog/log"

	gssh "github.com/orcatools/orcabatch/internal/ssh"
)

// PushBatch uploads the created job directories to remote_dir/<ordinal>/ on
// the cluster head node via SFTP. Upload only; submitting the jobs stays in
// the user's hands.
func PushBatch(ctx context.Context, host string, cfg PushConfig, outRoot string, ordinals []int) error {
	user := cfg.User
	if user == "" {
		user = os.Getenv("USER")
	}
	keyPath := cfg.KeyPath
	if keyPath == "" {
		home, _ := os.UserHomeDir()
		keyPath = filepath.Join(home, ".ssh", "id_ed25519")
	}
	knownHosts := cfg.KnownHosts
	if knownHosts == "" {
		home, _ := os.UserHomeDir()
		knownHosts = filepath.Join(home, ".ssh", "known_hosts")
	}
	if cfg.RemoteDir == "" {
		return Usagef("push.remote_dir must be set in the config to use --push")
	}

	signer, err := gssh.LoadPrivateKeySigner(keyPath)
	if err != nil {
		return err
	}
	kh, err := gssh.LoadKnownHostsCallback(knownHosts)
	if err != nil {
		return err
	}
	port := cfg.Port
	if port == 0 {
		port = 22
	}
	c := &gssh.Client{
		Addr:       fmt.Sprintf("%s:%d", host, port),
		User:       user,
		Signer:     signer,
		KnownHosts: kh,
		Timeout:    30 * time.Second,
		Retries:    cfg.Retries,
		Backoff:    500 * time.Millisecond,
	}
	cli, err := gssh.Dial(ctx, c)
	if err != nil {
		return err
	}
	defer cli.Close()
	sf, err := sftp.NewClient(cli)
	if err != nil {
		return fmt.Errorf("sftp client: %w", err)
	}
	defer sf.Close()

	for _, ord := range ordinals {
		local := filepath.Join(outRoot, strconv.Itoa(ord))
		remote := path.Join(cfg.RemoteDir, strconv.Itoa(ord))
		if err := gssh.PushDir(ctx, cli, sf, local, remote); err != nil {
			return fmt.Errorf("push %s: %w", local, err)
		}
		log.Info().Str("local", local).Str("remote", remote).Msg("folder uploaded")
	}
	return nil
}
