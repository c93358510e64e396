package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/tahaaa22/Fawry--e-commerce-system/internal/pos/cart"
	"github.com/tahaaa22/Fawry--e-commerce-system/internal/pos/catalog"
	"github.com/tahaaa22/Fawry--e-commerce-system/internal/pos/checkout"
	"github.com/tahaaa22/Fawry--e-commerce-system/internal/pos/domain"
	"github.com/tahaaa22/Fawry--e-commerce-system/internal/pos/presenter"
)

type scenario struct {
	Name        string
	Description string
}

var scenarios = []scenario{
	{"success", "Cheese x2, Biscuits x1, ScratchCard x1 against balance 1000"},
	{"expired", "Product expires between add and checkout"},
	{"out-of-stock", "Stock drained by another till before checkout"},
	{"low-balance", "Total exceeds the customer balance"},
	{"empty-cart", "Checkout with nothing in the cart"},
}

// demoClock lets scenarios move time forward between add and checkout.
type demoClock struct {
	now time.Time
}

func (c *demoClock) Now() time.Time { return c.now }

func runScenario(name string) string {
	out := &strings.Builder{}
	clock := &demoClock{now: time.Now()}
	cat := catalog.New()
	catalog.Seed(cat, clock)
	customer := catalog.DemoCustomer()
	orch := checkout.New(clock, presenter.NewConsole(out), presenter.NewConsole(out))
	sessionCart := cart.New(clock)

	mustGet := func(n domain.ProductName) *domain.Product {
		p, err := cat.Get(n)
		if err != nil {
			panic(err)
		}
		return p
	}
	add := func(n domain.ProductName, qty int) {
		if err := sessionCart.Add(mustGet(n), qty); err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
		}
	}

	switch name {
	case "success":
		add("Cheese", 2)
		add("Biscuits", 1)
		add("TV", 0) // rejected, the cart keeps what was added before
		add("ScratchCard", 1)
	case "expired":
		expiry := clock.now.Add(time.Hour)
		milk := &domain.Product{
			Name:     "Milk",
			Price:    decimal.NewFromInt(30),
			Quantity: 4,
			Expiry:   &expiry,
			Weight:   decimal.RequireFromString("0.5"),
		}
		_ = cat.Register(milk)
		add("Milk", 1)
		clock.now = clock.now.Add(2 * time.Hour)
	case "out-of-stock":
		add("Cheese", 2)
		// Another till sells the rest of the batch.
		_ = mustGet("Cheese").ReduceStock(5)
	case "low-balance":
		add("TV", 3)
		add("Mobile", 3)
		customer.Balance = decimal.NewFromInt(10)
	case "empty-cart":
	default:
		return fmt.Sprintf("unknown scenario %q", name)
	}

	if _, err := orch.Checkout(customer, sessionCart); err != nil {
		fmt.Fprintf(out, "Error: %v\n", err)
	}
	return out.String()
}

type model struct {
	selected int
	status   string
	output   string
}

func initialModel() model {
	return model{status: "Ready"}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "up":
			if m.selected > 0 {
				m.selected--
			}
		case "down":
			if m.selected < len(scenarios)-1 {
				m.selected++
			}
		case "enter":
			scn := scenarios[m.selected]
			m.status = fmt.Sprintf("Ran %s", scn.Name)
			m.output = runScenario(scn.Name)
		}
	}
	return m, nil
}

func (m model) View() string {
	b := &strings.Builder{}
	fmt.Fprintln(b, "POS checkout CLI")
	fmt.Fprintln(b, "")
	fmt.Fprintln(b, "Scenarios:")
	for i, scn := range scenarios {
		marker := " "
		if i == m.selected {
			marker = ">"
		}
		fmt.Fprintf(b, " %s %s - %s\n", marker, scn.Name, scn.Description)
	}
	fmt.Fprintln(b, "")
	fmt.Fprintf(b, "Status: %s\n", m.status)
	if m.output != "" {
		fmt.Fprintln(b, "")
		fmt.Fprint(b, m.output)
	}
	fmt.Fprintln(b, "\nControls: up/down select scenario, enter to run, q to quit")
	return b.String()
}

func main() {
	runCmd := flag.String("run", "", "run scenario non-interactively: success|expired|out-of-stock|low-balance|empty-cart")
	flag.Parse()

	if *runCmd != "" {
		fmt.Print(runScenario(*runCmd))
		return
	}

	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		fmt.Println("error:", err)
		os.Exit(1)
	}
}
