package commands

import (
	"bufio"
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"courier/internal/app"
	"courier/internal/crypto"
	"courier/internal/domain"
	"courier/internal/util/logging"
)

// runSession registers with the relay and drives the interactive loop until
// quit or end of input.
func runSession(ctx context.Context, w *app.Wire) error {
	printKeys(w)

	serverKey, err := w.Messages.Register(ctx, w.Config.ClientID)
	if err != nil {
		return fmt.Errorf("register with relay %s: %w", w.Config.ServerAddr, err)
	}
	fmt.Printf("registered with relay %s (server key %s)\n\n",
		w.Config.ServerAddr, crypto.Fingerprint(serverKey))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	if w.Config.Heartbeat > 0 {
		go heartbeatLoop(ctx, w)
	}

	printHelp()
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Printf("%s> ", w.Config.ClientID)
		if !scanner.Scan() {
			fmt.Println()
			return scanner.Err()
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "send":
			doSend(ctx, w, fields)
		case "receive", "recv":
			doReceive(ctx, w)
		case "contacts":
			doContacts(ctx, w)
		case "add":
			doAdd(w, fields)
		case "keys":
			printKeys(w)
		case "help":
			printHelp()
		case "quit", "exit":
			return nil
		default:
			fmt.Printf("unknown command %q; type help\n", fields[0])
		}
	}
}

func doSend(ctx context.Context, w *app.Wire, fields []string) {
	if len(fields) < 3 {
		fmt.Println("usage: send <peer> <text>")
		return
	}
	peer := fields[1]
	text := strings.Join(fields[2:], " ")

	id, err := w.Messages.Send(ctx, w.Config.ClientID, peer, []byte(text))
	if err != nil {
		fmt.Println("send failed:", err)
		return
	}
	fmt.Printf("sent to %s (id %s)\n", peer, id)
}

func doReceive(ctx context.Context, w *app.Wire) {
	in, err := w.Messages.Receive(ctx, w.Config.ClientID)
	if errors.Is(err, domain.ErrNoMessages) {
		fmt.Println("no new messages")
		return
	}
	if err != nil {
		fmt.Println("receive failed:", err)
		return
	}
	fmt.Printf("[%s] %s  (%s)\n", in.From, in.Plaintext, in.SentAt.Local().Format(time.RFC3339))
}

func doContacts(ctx context.Context, w *app.Wire) {
	ids, err := w.Messages.Contacts(ctx)
	if err != nil {
		fmt.Println("contacts failed:", err)
		return
	}
	if len(ids) == 0 {
		fmt.Println("nobody registered yet")
		return
	}
	known := make(map[string]bool)
	for _, id := range w.Book.IDs() {
		known[id] = true
	}
	for _, id := range ids {
		switch {
		case id == w.Config.ClientID:
			fmt.Printf("  %s (you)\n", id)
		case known[id]:
			fmt.Printf("  %s\n", id)
		default:
			fmt.Printf("  %s (no agreement key; use add)\n", id)
		}
	}
}

func doAdd(w *app.Wire, fields []string) {
	if len(fields) != 3 {
		fmt.Println("usage: add <peer> <hex-key>")
		return
	}
	if err := w.Book.Add(fields[1], fields[2]); err != nil {
		fmt.Println("add failed:", err)
		return
	}
	fmt.Printf("recorded agreement key for %s\n", fields[1])
}

func printKeys(w *app.Wire) {
	agreement := w.Identity.AgreementPublic()
	fmt.Printf("client id:     %s\n", w.Config.ClientID)
	fmt.Printf("signing key:   %s\n", hex.EncodeToString(w.Identity.SigningPublic()))
	fmt.Printf("agreement key: %s\n", hex.EncodeToString(agreement[:]))
}

func printHelp() {
	fmt.Println(`commands:
  send <peer> <text>     seal and relay a message
  receive                fetch and open your newest message
  contacts               list clients registered on the relay
  add <peer> <hex-key>   record a peer's agreement key
  keys                   print your public keys again
  help                   this text
  quit                   leave`)
}

func heartbeatLoop(ctx context.Context, w *app.Wire) {
	ticker := time.NewTicker(w.Config.Heartbeat)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := w.Messages.Heartbeat(ctx, w.Config.ClientID); err != nil {
				logging.Debug("heartbeat failed", zap.Error(err))
			}
		}
	}
}
