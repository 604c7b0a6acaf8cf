// Command server is the responder-side stdio harness for interoperability
// testing. It takes the network key and the server's long-term secret and
// public keys as hex arguments, shakes hands over stdin/stdout, and on
// success writes the outcome — encryption key, encryption nonce, decryption
// key, decryption nonce, 112 bytes total — to stdout. A protocol rejection
// exits with the number of the message that failed verification (1 or 3);
// usage errors exit 64 and stream failures 70.
//
// The ephemeral keys are fixed test vectors so runs are reproducible. Every
// authenticated client is admitted.
package main

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/scuttlenet/secrethandshake/internal/handshake"
)

var serverEphemeralPK = [32]byte{
	166, 12, 63, 218, 235, 136, 61, 99, 232, 142, 165, 147, 88, 93, 79, 177,
	23, 148, 129, 57, 179, 24, 192, 174, 90, 62, 40, 83, 51, 9, 97, 82,
}

var serverEphemeralSK = [32]byte{
	176, 248, 210, 185, 226, 76, 162, 153, 239, 144, 57, 206, 218, 97, 2, 215,
	155, 5, 223, 189, 22, 28, 137, 85, 228, 233, 93, 79, 217, 203, 63, 125,
}

func main() {
	if len(os.Args) != 4 {
		fmt.Fprintln(os.Stderr, "usage: server <network_key_hex> <secret_key_hex> <public_key_hex>")
		os.Exit(64)
	}
	networkKey := mustKey32(os.Args[1], "network key")
	serverSK := mustKey64(os.Args[2], "secret key")
	serverPK := mustKey32(os.Args[3], "public key")

	out := bufio.NewWriter(os.Stdout)
	stream := handshake.Duplex(os.Stdin, out)

	driver := handshake.NewResponder(stream, handshake.AcceptAny, &networkKey,
		&serverPK, &serverSK, &serverEphemeralPK, &serverEphemeralSK)

	outcome, err := driver.Step()
	if err != nil {
		if n := handshake.RejectedMessage(err); n != 0 {
			os.Exit(n)
		}
		fatal(err)
	}

	out.Write(outcome.EncryptionKey[:])
	out.Write(outcome.EncryptionNonce[:])
	out.Write(outcome.DecryptionKey[:])
	out.Write(outcome.DecryptionNonce[:])
	if err := out.Flush(); err != nil {
		fatal(err)
	}
	outcome.Zero()
}

func mustKey32(s, what string) [32]byte {
	var key [32]byte
	mustHex(key[:], s, what)
	return key
}

func mustKey64(s, what string) [64]byte {
	var key [64]byte
	mustHex(key[:], s, what)
	return key
}

func mustHex(dst []byte, s, what string) {
	raw, err := hex.DecodeString(s)
	if err != nil || len(raw) != len(dst) {
		fmt.Fprintf(os.Stderr, "server: %s must be %d hex characters\n", what, len(dst)*2)
		os.Exit(64)
	}
	copy(dst, raw)
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "server:", err)
	os.Exit(70)
}
