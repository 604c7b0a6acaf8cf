// Command client is the initiator-side stdio harness for interoperability
// testing. It takes the network key and the server's long-term public key as
// hex arguments, shakes hands over stdin/stdout, and on success writes the
// outcome — encryption key, encryption nonce, decryption key, decryption
// nonce, 112 bytes total — to stdout. A protocol rejection exits with the
// number of the message that failed verification (2 or 4); usage errors exit
// 64 and stream failures 70.
//
// The long-term and ephemeral keys are fixed test vectors so runs are
// reproducible.
package main

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/scuttlenet/secrethandshake/internal/handshake"
)

var clientLongtermPK = [32]byte{
	225, 162, 73, 136, 73, 119, 94, 84, 208, 102, 233, 120, 23, 46, 225, 245,
	198, 79, 176, 0, 151, 208, 70, 146, 111, 23, 94, 101, 25, 192, 30, 35,
}

var clientLongtermSK = [64]byte{
	243, 168, 6, 50, 44, 78, 192, 183, 210, 241, 189, 36, 183, 154, 132, 119,
	115, 84, 47, 151, 32, 32, 26, 237, 64, 180, 69, 20, 95, 133, 92, 176,
	225, 162, 73, 136, 73, 119, 94, 84, 208, 102, 233, 120, 23, 46, 225, 245,
	198, 79, 176, 0, 151, 208, 70, 146, 111, 23, 94, 101, 25, 192, 30, 35,
}

var clientEphemeralPK = [32]byte{
	79, 79, 77, 238, 254, 215, 129, 197, 235, 41, 185, 208, 47, 32, 146, 37,
	255, 237, 208, 215, 182, 92, 201, 106, 85, 86, 157, 41, 53, 165, 177, 32,
}

var clientEphemeralSK = [32]byte{
	80, 169, 55, 157, 134, 142, 219, 152, 125, 240, 174, 209, 225, 109, 46, 188,
	97, 224, 193, 187, 198, 58, 226, 193, 24, 235, 213, 214, 49, 55, 213, 104,
}

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintln(os.Stderr, "usage: client <network_key_hex> <server_public_key_hex>")
		os.Exit(64)
	}
	networkKey := mustKey(os.Args[1], "network key")
	serverPK := mustKey(os.Args[2], "server public key")

	out := bufio.NewWriter(os.Stdout)
	stream := handshake.Duplex(os.Stdin, out)

	driver, err := handshake.NewInitiator(stream, &networkKey,
		&clientLongtermPK, &clientLongtermSK, &clientEphemeralPK, &clientEphemeralSK, &serverPK)
	if err != nil {
		fatal(err)
	}

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

func mustKey(s, what string) [32]byte {
	raw, err := hex.DecodeString(s)
	if err != nil || len(raw) != 32 {
		fmt.Fprintf(os.Stderr, "client: %s must be 64 hex characters\n", what)
		os.Exit(64)
	}
	var key [32]byte
	copy(key[:], raw)
	return key
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "client:", err)
	os.Exit(70)
}
