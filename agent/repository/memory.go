package repository

import (
	"context"
	"slices"
	"sort"
	"strings"
	"sync"

	contractx "github.com/tanpawarit/Chative-Food-Delivery-Support/agent/contract"
)

var _ contractx.OrderRepository = (*Memory)(nil)

// Memory is an in-process OrderRepository used for local runs and tests.
type Memory struct {
	mu       sync.RWMutex
	orders   map[string]contractx.Order
	products []contractx.Product
	agents   []contractx.AgentRef
	tickets  []contractx.SupportTicket
}

func NewMemory() *Memory {
	return &Memory{orders: make(map[string]contractx.Order)}
}

func (m *Memory) PutOrder(o contractx.Order) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders[o.OrderID] = cloneOrder(o)
}

func (m *Memory) PutProduct(p contractx.Product) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products = append(m.products, p)
}

// PutAgent registers an available human agent.
func (m *Memory) PutAgent(a contractx.AgentRef) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.agents = append(m.agents, a)
}

// Tickets returns a copy of every ticket inserted so far.
func (m *Memory) Tickets() []contractx.SupportTicket {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.tickets)
}

func (m *Memory) GetOrder(_ context.Context, orderID string) (*contractx.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	o, ok := m.orders[orderID]
	if !ok {
		return nil, nil
	}
	out := cloneOrder(o)
	return &out, nil
}

func (m *Memory) UpdateOrderStatus(_ context.Context, orderID string, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if o, ok := m.orders[orderID]; ok {
		o.OrderStatus = status
		m.orders[orderID] = o
	}
	return nil
}

func (m *Memory) UpdateDeliveryIssue(_ context.Context, orderID string, issue string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if o, ok := m.orders[orderID]; ok {
		o.DeliveryIssue = issue
		m.orders[orderID] = o
	}
	return nil
}

func (m *Memory) GetOrdersByUser(_ context.Context, userID string, limit int) ([]contractx.Order, error) {
	m.mu.RLock()
	out := make([]contractx.Order, 0)
	for _, o := range m.orders {
		if o.CustomerID == userID {
			out = append(out, cloneOrder(o))
		}
	}
	m.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].OrderID > out[j].OrderID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *Memory) GetAvailableAgent(context.Context) (*contractx.AgentRef, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(m.agents) == 0 {
		return nil, nil
	}
	a := m.agents[0]
	return &a, nil
}

func (m *Memory) InsertSupportTicket(_ context.Context, ticket contractx.SupportTicket) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tickets = append(m.tickets, ticket)
	return nil
}

// SearchProduct returns the shortest product name containing the substring.
func (m *Memory) SearchProduct(_ context.Context, nameSubstring string, caseInsensitive bool) (*contractx.Product, error) {
	needle := strings.TrimSpace(nameSubstring)
	if caseInsensitive {
		needle = strings.ToLower(needle)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	var best *contractx.Product
	for i := range m.products {
		name := m.products[i].ItemName
		if caseInsensitive {
			name = strings.ToLower(name)
		}
		if !strings.Contains(name, needle) {
			continue
		}
		if best == nil || len(m.products[i].ItemName) < len(best.ItemName) {
			p := m.products[i]
			best = &p
		}
	}
	return best, nil
}

func (m *Memory) FindProductsByNames(_ context.Context, names []string) ([]contractx.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []contractx.Product
	for _, p := range m.products {
		if slices.Contains(names, p.ItemName) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *Memory) FindOrdersByUserAndItems(ctx context.Context, userID string, itemIDs []string) ([]string, error) {
	orders, _ := m.GetOrdersByUser(ctx, userID, 0)
	var ids []string
	for _, o := range orders {
		for _, item := range o.Cart {
			if slices.Contains(itemIDs, item.ItemID) {
				ids = append(ids, o.OrderID)
				break
			}
		}
	}
	return ids, nil
}

func cloneOrder(o contractx.Order) contractx.Order {
	o.Cart = slices.Clone(o.Cart)
	if o.DeliveryDate != nil {
		d := *o.DeliveryDate
		o.DeliveryDate = &d
	}
	return o
}
