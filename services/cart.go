// services/cart.go
package services

import (
	"sync"

	"github.com/thepalace/palace_backend/models"
)

// CartService holds the in-memory carts, one per employee UID. Carts live
// only for the process lifetime: a restart empties them, mirroring the
// terminal losing its cart on refresh.
type CartService struct {
	mu    sync.Mutex
	carts map[string][]models.TicketItem
}

func NewCartService() *CartService {
	return &CartService{carts: make(map[string][]models.TicketItem)}
}

// Add puts one unit of the product in the cart. Adding a product already
// present increments its quantity; lines keep insertion order.
func (s *CartService) Add(uid string, product models.Product) []models.TicketItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.carts[uid]
	productID := product.ID.Hex()

	for i := range cart {
		if cart[i].ProductID == productID {
			cart[i].Quantity++
			return copyCart(cart)
		}
	}

	cart = append(cart, models.TicketItem{
		ProductID: productID,
		Name:      product.Name,
		Price:     product.Price,
		Quantity:  1,
	})
	s.carts[uid] = cart
	return copyCart(cart)
}

// SetQuantity updates a line's quantity. A quantity of zero or less removes
// the line.
func (s *CartService) SetQuantity(uid, productID string, quantity int) []models.TicketItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.carts[uid]
	if quantity <= 0 {
		s.carts[uid] = removeLine(cart, productID)
		return copyCart(s.carts[uid])
	}

	for i := range cart {
		if cart[i].ProductID == productID {
			cart[i].Quantity = quantity
			break
		}
	}
	return copyCart(cart)
}

// Remove deletes a line from the cart.
func (s *CartService) Remove(uid, productID string) []models.TicketItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.carts[uid] = removeLine(s.carts[uid], productID)
	return copyCart(s.carts[uid])
}

// Get returns a snapshot of the cart.
func (s *CartService) Get(uid string) []models.TicketItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyCart(s.carts[uid])
}

// Clear empties the cart after a ticket has been validated.
func (s *CartService) Clear(uid string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, uid)
}

// CartTotal sums price times quantity over the lines.
func CartTotal(items []models.TicketItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// CommissionFor computes the employee commission on a total at the given
// percentage rate.
func CommissionFor(total, rate float64) float64 {
	return total * rate / 100
}

func removeLine(cart []models.TicketItem, productID string) []models.TicketItem {
	out := cart[:0]
	for _, item := range cart {
		if item.ProductID != productID {
			out = append(out, item)
		}
	}
	return out
}

func copyCart(cart []models.TicketItem) []models.TicketItem {
	out := make([]models.TicketItem, len(cart))
	copy(out, cart)
	return out
}
