// Package simulation drives the dispatch core with randomized traffic.
// A background loop places orders, has drivers accept them, and advances
// deliveries through their lifecycle, exercising the same command surface
// external clients use.
package simulation

import (
	"math/rand"

	"dispatch/internal/core/domain/model/kernel"
)

// menuItem is one entry in the static restaurant catalog.
type menuItem struct {
	name  string
	price float64
}

var menu = []menuItem{
	{"Margherita Pizza", 11.50},
	{"Pepperoni Pizza", 13.00},
	{"Pad Thai", 12.50},
	{"Green Curry", 13.50},
	{"Cheeseburger", 9.90},
	{"Caesar Salad", 8.50},
	{"Ramen Bowl", 14.00},
	{"Fish Tacos", 10.50},
	{"Falafel Wrap", 8.90},
	{"Tiramisu", 6.50},
}

// driverNames seeds the initial driver roster.
var driverNames = []string{
	"Alice",
	"Bob",
	"Carol",
	"Dave",
	"Erin",
}

const seededCustomers = 5

// randomBasket picks 1 to 3 random menu items and returns their names with
// the combined price.
func randomBasket(rng *rand.Rand) ([]string, float64) {
	count := 1 + rng.Intn(3)

	items := make([]string, 0, count)
	total := 0.0
	for i := 0; i < count; i++ {
		item := menu[rng.Intn(len(menu))]
		items = append(items, item.name)
		total += item.price
	}

	return items, total
}

// newCustomerIDs generates the seeded customer identities.
func newCustomerIDs(count int) []kernel.UUID {
	ids := make([]kernel.UUID, 0, count)
	for i := 0; i < count; i++ {
		ids = append(ids, kernel.NewUUID())
	}
	return ids
}
