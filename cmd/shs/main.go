// Command shs manages secret-handshake identities and runs handshakes over
// TCP: keygen and setup for provisioning, listen for the responder side,
// connect for the initiator side.
package main

import (
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/scuttlenet/secrethandshake/internal/config"
	"github.com/scuttlenet/secrethandshake/internal/crypto"
	"github.com/scuttlenet/secrethandshake/internal/handshake"
	"github.com/scuttlenet/secrethandshake/internal/identity"
	"github.com/scuttlenet/secrethandshake/internal/logging"
	"github.com/scuttlenet/secrethandshake/internal/metrics"
	"github.com/scuttlenet/secrethandshake/internal/wizard"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "shs",
		Short: "Secret-handshake identity and connection tool",
		Long: `shs manages long-term handshake identities and performs
mutually authenticating handshakes over TCP. Peers sharing a network key
prove possession of their long-term signing keys to each other and derive
directional encryption keys for a subsequent transport.`,
		Version: Version,
	}

	rootCmd.AddCommand(keygenCmd())
	rootCmd.AddCommand(setupCmd())
	rootCmd.AddCommand(listenCmd())
	rootCmd.AddCommand(connectCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func keygenCmd() *cobra.Command {
	var dataDir string

	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Create (or show) this node's long-term identity",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, created, err := identity.LoadOrCreate(dataDir)
			if err != nil {
				return err
			}
			defer id.Zero()
			if created {
				fmt.Printf("Created identity in %s\n", dataDir)
			}
			fmt.Printf("Public key: %s\n", id.PublicHex())
			return nil
		},
	}

	cmd.Flags().StringVar(&dataDir, "data-dir", config.Default().DataDir, "identity directory")
	return cmd
}

func setupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Interactively write a starter configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := wizard.New(os.Stdin, os.Stdout).Run()
			return err
		},
	}
}

func listenCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "listen",
		Short: "Accept and authenticate handshakes",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if cfg.Listen.Address == "" {
				return errors.New("listen.address is not configured")
			}
			return runListen(cfg, newLogger(cfg))
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "shs.yaml", "configuration file")
	return cmd
}

func runListen(cfg *config.Config, logger *slog.Logger) error {
	networkKey, err := cfg.NetworkKeyBytes()
	if err != nil {
		return err
	}
	id, created, err := identity.LoadOrCreate(cfg.DataDir)
	if err != nil {
		return err
	}
	if created {
		logger.Info("created identity", "data_dir", cfg.DataDir)
	}

	allowed, err := cfg.AllowedKeys()
	if err != nil {
		return err
	}
	check := allowListCheck(allowed)

	if cfg.Listen.MetricsAddress != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			if err := http.ListenAndServe(cfg.Listen.MetricsAddress, mux); err != nil {
				logger.Error("metrics endpoint failed", logging.KeyError, err)
			}
		}()
		logger.Info("serving metrics", logging.KeyLocalAddr, cfg.Listen.MetricsAddress)
	}

	ln, err := net.Listen("tcp", cfg.Listen.Address)
	if err != nil {
		return err
	}
	logger.Info("listening",
		logging.KeyLocalAddr, cfg.Listen.Address,
		"public_key", id.PublicHex())

	for {
		conn, err := ln.Accept()
		if err != nil {
			return err
		}
		go serveConn(conn, check, &networkKey, id, logger)
	}
}

// allowListCheck builds the admission predicate from the configured allow
// list. An empty list admits every authenticated peer.
func allowListCheck(allowed [][32]byte) handshake.CheckClient {
	if len(allowed) == 0 {
		return handshake.AcceptAny
	}
	return func(remote *[32]byte) handshake.PendingDecision {
		for i := range allowed {
			if subtle.ConstantTimeCompare(allowed[i][:], remote[:]) == 1 {
				return handshake.Decided(true)
			}
		}
		return handshake.Decided(false)
	}
}

func serveConn(conn net.Conn, check handshake.CheckClient, networkKey *[32]byte, id *identity.Identity, logger *slog.Logger) {
	defer conn.Close()

	m := metrics.Default()
	m.HandshakesActive.Inc()
	defer m.HandshakesActive.Dec()

	ephPK, ephSK, err := crypto.GenerateEphemeralKeypair()
	if err != nil {
		logger.Error("ephemeral keygen failed", logging.KeyError, err)
		return
	}

	driver := handshake.NewResponder(handshake.Duplex(conn, conn), check,
		networkKey, &id.Public, &id.Secret, &ephPK, &ephSK)
	defer driver.Close()

	start := time.Now()
	outcome, err := driver.Step()
	duration := time.Since(start)
	m.HandshakeDuration.Observe(duration.Seconds())

	if err != nil {
		m.Handshakes.WithLabelValues("responder", resultLabel(err)).Inc()
		logger.Warn("handshake failed",
			logging.KeyRole, "responder",
			logging.KeyRemoteAddr, conn.RemoteAddr().String(),
			logging.KeyError, err)
		return
	}
	defer outcome.Zero()

	m.Handshakes.WithLabelValues("responder", metrics.ResultOK).Inc()
	logger.Info("handshake complete",
		logging.KeyRole, "responder",
		logging.KeyRemoteAddr, conn.RemoteAddr().String(),
		logging.KeyRemoteKey, hex.EncodeToString(outcome.RemotePublic[:]),
		logging.KeyDuration, duration)
}

func connectCmd() *cobra.Command {
	var configPath string
	var raw bool

	cmd := &cobra.Command{
		Use:   "connect",
		Short: "Dial a peer and run the initiator handshake",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if cfg.Peer.Address == "" {
				return errors.New("peer.address is not configured")
			}
			return runConnect(cfg, newLogger(cfg), raw)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "shs.yaml", "configuration file")
	cmd.Flags().BoolVar(&raw, "raw", false, "write the 112-byte outcome to stdout instead of hex")
	return cmd
}

func runConnect(cfg *config.Config, logger *slog.Logger, raw bool) error {
	networkKey, err := cfg.NetworkKeyBytes()
	if err != nil {
		return err
	}
	remotePK, err := identity.ParsePublic(cfg.Peer.PublicKey)
	if err != nil {
		return err
	}
	id, _, err := identity.LoadOrCreate(cfg.DataDir)
	if err != nil {
		return err
	}
	ephPK, ephSK, err := crypto.GenerateEphemeralKeypair()
	if err != nil {
		return err
	}

	conn, err := net.Dial("tcp", cfg.Peer.Address)
	if err != nil {
		return err
	}
	defer conn.Close()

	driver, err := handshake.NewInitiator(handshake.Duplex(conn, conn),
		&networkKey, &id.Public, &id.Secret, &ephPK, &ephSK, &remotePK)
	if err != nil {
		return err
	}
	defer driver.Close()

	m := metrics.Default()
	start := time.Now()
	outcome, err := driver.Step()
	duration := time.Since(start)
	m.HandshakeDuration.Observe(duration.Seconds())

	if err != nil {
		m.Handshakes.WithLabelValues("initiator", resultLabel(err)).Inc()
		return err
	}
	defer outcome.Zero()

	m.Handshakes.WithLabelValues("initiator", metrics.ResultOK).Inc()
	logger.Info("handshake complete",
		logging.KeyRole, "initiator",
		logging.KeyRemoteAddr, cfg.Peer.Address,
		logging.KeyRemoteKey, hex.EncodeToString(outcome.RemotePublic[:]),
		logging.KeyDuration, duration)

	if raw {
		os.Stdout.Write(outcome.EncryptionKey[:])
		os.Stdout.Write(outcome.EncryptionNonce[:])
		os.Stdout.Write(outcome.DecryptionKey[:])
		os.Stdout.Write(outcome.DecryptionNonce[:])
		return nil
	}
	fmt.Printf("peer:             %s\n", hex.EncodeToString(outcome.RemotePublic[:]))
	fmt.Printf("encryption key:   %s\n", hex.EncodeToString(outcome.EncryptionKey[:]))
	fmt.Printf("encryption nonce: %s\n", hex.EncodeToString(outcome.EncryptionNonce[:]))
	fmt.Printf("decryption key:   %s\n", hex.EncodeToString(outcome.DecryptionKey[:]))
	fmt.Printf("decryption nonce: %s\n", hex.EncodeToString(outcome.DecryptionNonce[:]))
	return nil
}

// resultLabel maps a terminal handshake error to its metrics label.
func resultLabel(err error) string {
	switch {
	case errors.Is(err, handshake.ErrUnauthorizedPeer):
		return metrics.ResultUnauthorized
	case handshake.IsProtocolRejection(err):
		return metrics.ResultRejected
	}
	return metrics.ResultIOError
}

func newLogger(cfg *config.Config) *slog.Logger {
	format := cfg.Log.Format
	if format == "" || format == "auto" {
		if term.IsTerminal(int(os.Stderr.Fd())) {
			format = "text"
		} else {
			format = "json"
		}
	}
	return logging.NewLogger(cfg.Log.Level, format)
}
