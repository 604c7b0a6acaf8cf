// Package wizard provides an interactive setup flow that writes a starter
// configuration file for the shs tool.
package wizard

import (
	"bufio"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/scuttlenet/secrethandshake/internal/config"
	"github.com/scuttlenet/secrethandshake/internal/identity"
	"github.com/scuttlenet/secrethandshake/internal/shs"
	"gopkg.in/yaml.v3"
)

// Result contains the wizard output.
type Result struct {
	Config     *config.Config
	ConfigPath string
}

// Wizard manages the interactive setup process.
type Wizard struct {
	in  *bufio.Scanner
	out io.Writer
}

// New creates a wizard reading prompt answers from in and printing to out.
func New(in io.Reader, out io.Writer) *Wizard {
	return &Wizard{in: bufio.NewScanner(in), out: out}
}

// Run executes the interactive setup and writes the resulting config file.
func (w *Wizard) Run() (*Result, error) {
	fmt.Fprintln(w.out, "shs setup")
	fmt.Fprintln(w.out, "---------")

	cfg := config.Default()

	key, err := w.askNetworkKey()
	if err != nil {
		return nil, err
	}
	cfg.NetworkKey = key

	cfg.DataDir = w.ask("Data directory", cfg.DataDir)
	cfg.Listen.Address = w.ask("Listen address (empty to disable)", cfg.Listen.Address)
	if cfg.Listen.Address != "" {
		cfg.Listen.MetricsAddress = w.ask("Metrics address (empty to disable)", "")
	}

	peerAddr := w.ask("Peer address to connect to (empty to skip)", "")
	if peerAddr != "" {
		cfg.Peer.Address = peerAddr
		for {
			pk := w.ask("Peer public key (hex)", "")
			if _, err := identity.ParsePublic(pk); err == nil {
				cfg.Peer.PublicKey = pk
				break
			}
			fmt.Fprintln(w.out, "not a 64-character hex key, try again")
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	path := w.ask("Write configuration to", "shs.yaml")
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("wizard: marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return nil, fmt.Errorf("wizard: write config: %w", err)
	}

	fmt.Fprintf(w.out, "\nWrote %s\n", path)
	fmt.Fprintln(w.out, "Run `shs keygen` next to create this node's identity.")

	return &Result{Config: cfg, ConfigPath: path}, nil
}

// askNetworkKey prompts for a network key, generating a random one when the
// answer is empty.
func (w *Wizard) askNetworkKey() (string, error) {
	answer := w.ask("Network key (hex, empty to generate)", "")
	if answer != "" {
		return answer, nil
	}
	var key [shs.NetworkKeySize]byte
	if _, err := rand.Read(key[:]); err != nil {
		return "", fmt.Errorf("wizard: generate network key: %w", err)
	}
	generated := hex.EncodeToString(key[:])
	fmt.Fprintf(w.out, "Generated network key: %s\n", generated)
	fmt.Fprintln(w.out, "Share it with every peer on this network.")
	return generated, nil
}

func (w *Wizard) ask(prompt, fallback string) string {
	if fallback != "" {
		fmt.Fprintf(w.out, "%s [%s]: ", prompt, fallback)
	} else {
		fmt.Fprintf(w.out, "%s: ", prompt)
	}
	if !w.in.Scan() {
		return fallback
	}
	answer := strings.TrimSpace(w.in.Text())
	if answer == "" {
		return fallback
	}
	return answer
}
