//go:build integration
// +build integration

package scripts

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/ZanzyTHEbar/vendabot/vbot/agent/adapters"
	ports "github.com/ZanzyTHEbar/vendabot/vbot/agent/ports"
	"github.com/ZanzyTHEbar/vendabot/vbot/db"
)

func must(err error, msg string) {
	if err != nil {
		log.Fatalf("%s: %v", msg, err)
	}
}

// RunSmokeLibSQL verifies the embedded LibSQL build end to end:
// connect, migrate, persist a conversation, and number an order.
func RunSmokeLibSQL() {
	fmt.Println("Smoke test: LibSQL embedded store")
	tmp := "./smoke.db"
	defer os.Remove(tmp)

	dbconn, err := db.ConnectToDB(tmp)
	must(err, "connect")
	defer dbconn.Close()

	var v int
	must(dbconn.QueryRow("SELECT 1").Scan(&v), "basic SELECT")
	fmt.Println("OK: basic SQL")

	var jsonRes string
	must(dbconn.QueryRow(`SELECT json_extract('{"test":"value"}', '$.test')`).Scan(&jsonRes), "JSON1 query")
	if jsonRes != "value" {
		log.Fatalf("JSON1 returned unexpected: %v", jsonRes)
	}
	fmt.Println("OK: JSON1")

	store, err := adapters.NewLibSQLStore(dbconn)
	must(err, "migrate")
	fmt.Println("OK: migrations")

	ctx := context.Background()
	cart := []ports.CartItem{{ID: "P1", Name: "Arroz", Price: 10, Quantity: 2}}
	must(store.SaveConversation(ctx, "smoke", "5511999", []ports.Message{
		{Role: "user", Content: "quero 2 arroz"},
		{Role: "assistant", Content: "Adicionei!"},
	}, cart, ports.CustomerData{FlowState: ports.StateBrowsing}), "save conversation")

	conv, err := store.LoadConversation(ctx, "smoke", "5511999")
	must(err, "load conversation")
	if conv == nil || len(conv.Messages) != 2 || len(conv.Cart) != 1 {
		log.Fatalf("round trip mismatch: %+v", conv)
	}
	fmt.Println("OK: conversation round trip")

	first, err := store.CreateOrder(ctx, "smoke", ports.CustomerData{Name: "Joao"}, cart, 5)
	must(err, "create order")
	second, err := store.CreateOrder(ctx, "smoke", ports.CustomerData{Name: "Maria"}, cart, 5)
	must(err, "create second order")
	if second.OrderNumber != first.OrderNumber+1 {
		log.Fatalf("order numbers not sequential: %d then %d", first.OrderNumber, second.OrderNumber)
	}
	fmt.Printf("OK: order numbering (#%d, #%d)\n", first.OrderNumber, second.OrderNumber)

	fmt.Println("Smoke test passed")
}
