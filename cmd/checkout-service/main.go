package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tahaaa22/Fawry--e-commerce-system/internal/pos/cart"
	"github.com/tahaaa22/Fawry--e-commerce-system/internal/pos/catalog"
	"github.com/tahaaa22/Fawry--e-commerce-system/internal/pos/checkout"
	"github.com/tahaaa22/Fawry--e-commerce-system/internal/pos/domain"
	"github.com/tahaaa22/Fawry--e-commerce-system/internal/pos/presenter"
	"github.com/tahaaa22/Fawry--e-commerce-system/pkg/contracts"
	"github.com/tahaaa22/Fawry--e-commerce-system/pkg/kafka"
	"github.com/tahaaa22/Fawry--e-commerce-system/pkg/logging"
	"github.com/tahaaa22/Fawry--e-commerce-system/pkg/metrics"
)

type cfg struct {
	Port         string
	KafkaBrokers string
	KafkaTopic   string
}

func readCfg() cfg {
	return cfg{
		Port:         getenv("PORT", "8080"),
		KafkaBrokers: getenv("KAFKA_BROKERS", ""),
		KafkaTopic:   getenv("KAFKA_TOPIC", "pos.checkout.events"),
	}
}

type Item struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type CheckoutRequest struct {
	Customer string  `json:"customer"`
	Balance  float64 `json:"balance"`
	Items    []Item  `json:"items"`
}

type CheckoutResponse struct {
	Status       string           `json:"status"`
	Receipt      checkout.Receipt `json:"receipt"`
	ReceiptText  string           `json:"receipt_text"`
	ShipmentText string           `json:"shipment_text,omitempty"`
}

type CatalogEntry struct {
	Name       string `json:"name"`
	Price      string `json:"price"`
	Quantity   int    `json:"quantity"`
	Perishable bool   `json:"perishable"`
	Expiry     string `json:"expiry,omitempty"`
	Shippable  bool   `json:"shippable"`
	WeightKg   string `json:"weight_kg,omitempty"`
}

func main() {
	cfg := readCfg()

	clock := domain.SystemClock{}
	cat := catalog.New()
	catalog.Seed(cat, clock)

	srvMetrics := metrics.NewServerMetrics("checkout_service")

	var publisher *kafka.Publisher
	kafkaClient := kafka.NewClient(cfg.KafkaBrokers)
	if kafkaClient.Enabled() {
		publisher = kafkaClient.NewPublisher(cfg.KafkaTopic)
		defer func() { _ = publisher.Close() }()
	}

	// Checkout is a transaction over shared catalog stock; requests take
	// turns so the validate-then-commit sequence stays atomic.
	var mu sync.Mutex

	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
		srvMetrics.Requests.WithLabelValues("health", "200").Inc()
		srvMetrics.LatencyMS.WithLabelValues("health").Observe(float64(time.Since(start).Milliseconds()))
	})
	mux.Handle("/metrics", metrics.Handler())

	mux.HandleFunc("/catalog", func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		if r.Method != http.MethodGet {
			writeJSON(w, http.StatusMethodNotAllowed, map[string]any{"error": "method not allowed"})
			srvMetrics.Requests.WithLabelValues("catalog", "405").Inc()
			srvMetrics.LatencyMS.WithLabelValues("catalog").Observe(float64(time.Since(start).Milliseconds()))
			return
		}
		mu.Lock()
		entries := make([]CatalogEntry, 0)
		for _, p := range cat.List() {
			e := CatalogEntry{
				Name:       string(p.Name),
				Price:      p.Price.String(),
				Quantity:   p.Quantity,
				Perishable: p.Perishable(),
				Shippable:  p.Shippable(),
			}
			if p.Expiry != nil {
				e.Expiry = p.Expiry.UTC().Format(time.RFC3339)
			}
			if p.Shippable() {
				e.WeightKg = p.Weight.String()
			}
			entries = append(entries, e)
		}
		mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]any{"products": entries})
		srvMetrics.Requests.WithLabelValues("catalog", "200").Inc()
		srvMetrics.LatencyMS.WithLabelValues("catalog").Observe(float64(time.Since(start).Milliseconds()))
	})

	mux.HandleFunc("/checkout", func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		handler := "checkout"
		if r.Method != http.MethodPost {
			writeJSON(w, http.StatusMethodNotAllowed, map[string]any{"error": "method not allowed"})
			srvMetrics.Requests.WithLabelValues(handler, "405").Inc()
			srvMetrics.LatencyMS.WithLabelValues(handler).Observe(float64(time.Since(start).Milliseconds()))
			return
		}
		var req CheckoutRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid json"})
			srvMetrics.Requests.WithLabelValues(handler, "400").Inc()
			srvMetrics.LatencyMS.WithLabelValues(handler).Observe(float64(time.Since(start).Milliseconds()))
			return
		}
		customerName := strings.TrimSpace(req.Customer)
		if customerName == "" {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": "customer is required"})
			srvMetrics.Requests.WithLabelValues(handler, "400").Inc()
			srvMetrics.LatencyMS.WithLabelValues(handler).Observe(float64(time.Since(start).Milliseconds()))
			return
		}

		customer := &domain.Customer{Name: customerName, Balance: decimal.NewFromFloat(req.Balance)}

		mu.Lock()
		defer mu.Unlock()

		sessionCart := cart.New(clock)
		for _, it := range req.Items {
			p, err := cat.Get(domain.ProductName(strings.TrimSpace(it.Name)))
			if err != nil {
				writeJSON(w, http.StatusNotFound, map[string]any{"error": "unknown product", "product": it.Name})
				srvMetrics.Requests.WithLabelValues(handler, "404").Inc()
				srvMetrics.LatencyMS.WithLabelValues(handler).Observe(float64(time.Since(start).Milliseconds()))
				return
			}
			if err := sessionCart.Add(p, it.Quantity); err != nil {
				rejectCheckout(r.Context(), w, srvMetrics, publisher, customerName, err)
				srvMetrics.LatencyMS.WithLabelValues(handler).Observe(float64(time.Since(start).Milliseconds()))
				return
			}
		}

		var receiptBuf, shipmentBuf bytes.Buffer
		orch := checkout.New(clock, presenter.NewConsole(&receiptBuf), presenter.NewConsole(&shipmentBuf))
		rcpt, err := orch.Checkout(customer, sessionCart)
		if err != nil {
			rejectCheckout(r.Context(), w, srvMetrics, publisher, customerName, err)
			srvMetrics.LatencyMS.WithLabelValues(handler).Observe(float64(time.Since(start).Milliseconds()))
			return
		}

		resp := CheckoutResponse{
			Status:       "COMPLETED",
			Receipt:      rcpt,
			ReceiptText:  receiptBuf.String(),
			ShipmentText: shipmentBuf.String(),
		}
		writeJSON(w, http.StatusOK, resp)
		srvMetrics.Requests.WithLabelValues(handler, "200").Inc()
		srvMetrics.Checkouts.WithLabelValues("completed").Inc()
		srvMetrics.LatencyMS.WithLabelValues(handler).Observe(float64(time.Since(start).Milliseconds()))

		logging.Log(logging.Fields{
			Service:    "checkout-service",
			Customer:   customerName,
			ReceiptID:  rcpt.ID,
			Step:       "checkout",
			Status:     "completed",
			DurationMS: time.Since(start).Milliseconds(),
		})
		publishEvent(r.Context(), publisher, contracts.Event{
			EventID:   uuid.NewString(),
			ReceiptID: rcpt.ID,
			Customer:  customerName,
			CreatedAt: time.Now().UTC(),
			Type:      contracts.EventCheckoutCompleted,
			Payload: map[string]any{
				"subtotal": rcpt.Subtotal,
				"shipping": rcpt.Shipping,
				"total":    rcpt.Total,
				"lines":    len(rcpt.Lines),
			},
		})
		if shipmentBuf.Len() > 0 {
			publishEvent(r.Context(), publisher, contracts.Event{
				EventID:   uuid.NewString(),
				ReceiptID: rcpt.ID,
				Customer:  customerName,
				CreatedAt: time.Now().UTC(),
				Type:      contracts.EventShipmentCreated,
				Payload:   map[string]any{"shipping_fee": rcpt.Shipping},
			})
		}
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Printf("checkout-service listening on :%s (kafka=%v)", cfg.Port, kafkaClient.Enabled())
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("http server error: %v", err)
	}
}

// rejectCheckout maps the domain error taxonomy onto the structured 409
// body, records the outcome and emits the rejected event.
func rejectCheckout(ctx context.Context, w http.ResponseWriter, m *metrics.ServerMetrics, publisher *kafka.Publisher, customer string, err error) {
	kind := errKind(err)
	body := map[string]any{"status": "REJECTED", "error_kind": kind}
	if name, ok := domain.FailedProduct(err); ok {
		body["product"] = string(name)
	}
	writeJSON(w, http.StatusConflict, body)
	m.Requests.WithLabelValues("checkout", "409").Inc()
	m.Checkouts.WithLabelValues(strings.ToLower(kind)).Inc()

	fields := logging.Fields{
		Service:  "checkout-service",
		Customer: customer,
		Step:     "checkout",
		Status:   "rejected",
		Message:  err.Error(),
	}
	if name, ok := domain.FailedProduct(err); ok {
		fields.Product = string(name)
	}
	logging.Log(fields)

	evt := contracts.Event{
		EventID:   uuid.NewString(),
		Customer:  customer,
		CreatedAt: time.Now().UTC(),
		Type:      contracts.EventCheckoutRejected,
		Payload:   map[string]any{"reason": kind},
	}
	if name, ok := domain.FailedProduct(err); ok {
		evt.Payload["product"] = string(name)
	}
	publishEvent(ctx, publisher, evt)
}

func publishEvent(ctx context.Context, publisher *kafka.Publisher, evt contracts.Event) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, evt); err != nil {
		log.Printf("event publish error: %v", err)
	}
}

func errKind(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidQuantity):
		return "INVALID_QUANTITY"
	case errors.Is(err, domain.ErrExpiredProduct):
		return "EXPIRED_PRODUCT"
	case errors.Is(err, domain.ErrInsufficientStock):
		return "INSUFFICIENT_STOCK"
	case errors.Is(err, domain.ErrInsufficientBalance):
		return "INSUFFICIENT_BALANCE"
	case errors.Is(err, domain.ErrEmptyCart):
		return "EMPTY_CART"
	default:
		return "INTERNAL"
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func getenv(k, def string) string {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	return v
}
