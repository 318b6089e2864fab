package main

import (
	"context"
	"flag"
	"log"
	"math"
	"math/rand"
	"os"
	"strings"
	"time"

	"store-assistant-be/internal/entity"
	"store-assistant-be/internal/repository/implementation"
	"store-assistant-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// Seeds the orders table with randomized Gundam kit orders for local
// development and manual testing.

type catalogItem struct {
	Model     string
	Grade     string
	Scale     string
	BasePrice float64
}

var catalog = []catalogItem{
	{"RX-78-2 Gundam", "Perfect Grade", "1/60", 180.00},
	{"Unicorn Gundam", "Real Grade", "1/144", 45.00},
	{"Strike Freedom Gundam", "Master Grade", "1/100", 65.00},
	{"Gundam Barbatos", "Master Grade", "1/100", 55.00},
	{"Sazabi", "Real Grade", "1/144", 50.00},
	{"Nu Gundam", "Real Grade", "1/144", 48.00},
	{"Wing Gundam Zero EW", "Perfect Grade", "1/60", 190.00},
	{"Zaku II", "High Grade", "1/144", 25.00},
	{"Gundam Exia", "Perfect Grade", "1/60", 175.00},
	{"Sinanju", "Master Grade", "1/100", 70.00},
}

type customer struct {
	Name  string
	Email string
}

var customers = []customer{
	{"John Smith", "john.smith@email.com"},
	{"Emma Wilson", "emma.w@email.com"},
	{"Michael Chen", "m.chen@email.com"},
	{"Sarah Johnson", "sarahj@email.com"},
	{"David Kim", "d.kim@email.com"},
	{"Lisa Garcia", "l.garcia@email.com"},
	{"James Williams", "jwilliams@email.com"},
	{"Maria Rodriguez", "m.rodriguez@email.com"},
	{"Robert Taylor", "rob.t@email.com"},
	{"Jennifer Lee", "j.lee@email.com"},
	{"William Brown", "w.brown@email.com"},
	{"Elizabeth Davis", "e.davis@email.com"},
	{"Thomas Anderson", "t.anderson@email.com"},
	{"Jessica Martinez", "j.martinez@email.com"},
	{"Daniel White", "d.white@email.com"},
	{"Michelle Turner", "m.turner@email.com"},
	{"Kevin Parker", "k.parker@email.com"},
	{"Amanda Collins", "a.collins@email.com"},
	{"Christopher Hall", "c.hall@email.com"},
	{"Rachel Green", "r.green@email.com"},
}

var seedStatuses = []string{"pending", "in_production", "shipped"}

func main() {
	count := flag.Int("count", 50, "number of orders to generate")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	orders := make([]*entity.Order, 0, *count)
	for i := 0; i < *count; i++ {
		orders = append(orders, randomOrder(rng))
	}

	repo := implementation.NewOrderRepository(db)
	if err := repo.CreateBulk(context.Background(), orders); err != nil {
		log.Fatalf("Error: Failed to insert orders: %v", err)
	}

	log.Printf("Seeded %d orders", len(orders))
}

func randomOrder(rng *rand.Rand) *entity.Order {
	cust := customers[rng.Intn(len(customers))]
	status := seedStatuses[rng.Intn(len(seedStatuses))]

	numItems := 1 + rng.Intn(3)
	picks := rng.Perm(len(catalog))[:numItems]

	var items []entity.OrderItem
	var total float64
	for _, idx := range picks {
		item := catalog[idx]
		quantity := 1 + rng.Intn(2)
		items = append(items, entity.OrderItem{
			Model:    item.Model,
			Grade:    item.Grade,
			Scale:    item.Scale,
			Quantity: quantity,
			Price:    item.BasePrice,
		})
		total += item.BasePrice * float64(quantity)
	}

	// Older statuses get older creation times
	now := time.Now()
	createdAt := now
	switch status {
	case "in_production":
		createdAt = now.AddDate(0, 0, -(1 + rng.Intn(3)))
	case "shipped":
		createdAt = now.AddDate(0, 0, -(4 + rng.Intn(4)))
	}

	return &entity.Order{
		OrderID:       "ORD-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8]),
		Detail:        entity.OrderDetail{Items: items},
		TotalPrice:    math.Round(total*100) / 100,
		CustomerName:  cust.Name,
		CustomerEmail: cust.Email,
		Status:        status,
		CreatedAt:     createdAt,
		UpdatedAt:     now,
	}
}
