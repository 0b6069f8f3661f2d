package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/akhdanfarrosrenoldi/shaynacosmeticfrontend/internal/analytics"
	"github.com/akhdanfarrosrenoldi/shaynacosmeticfrontend/internal/booking"
	"github.com/akhdanfarrosrenoldi/shaynacosmeticfrontend/internal/cart"
	"github.com/akhdanfarrosrenoldi/shaynacosmeticfrontend/internal/catalog"
	"github.com/akhdanfarrosrenoldi/shaynacosmeticfrontend/internal/checkout"
	"github.com/akhdanfarrosrenoldi/shaynacosmeticfrontend/internal/config"
	"github.com/akhdanfarrosrenoldi/shaynacosmeticfrontend/internal/pricing"
	"github.com/akhdanfarrosrenoldi/shaynacosmeticfrontend/internal/storage"
)

func usage() {
	fmt.Println(`shayna storefront client

  storefront cart add <cosmetic-id> <slug> <quantity>
  storefront cart list
  storefront cart clear
  storefront checkout
  storefront pay <proof-file>
  storefront lookup <trx-id> <email>`)
	os.Exit(2)
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	kv, closeKV, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}
	defer closeKV()

	var events *analytics.Producer
	if len(cfg.KafkaBrokers) > 0 {
		events = analytics.NewProducer(cfg.KafkaBrokers, 256)
		events.Start(ctx)
		defer func() {
			events.Close()
			events.WaitClosed()
		}()
	}

	cartStore := &cart.Store{KV: kv}
	draftStore := &booking.DraftStore{KV: kv}
	catalogClient := catalog.NewClient(cfg.APIBaseURL)
	bookingClient := booking.NewClient(cfg.APIBaseURL)
	svc := &checkout.Service{Cart: cartStore, Drafts: draftStore, Catalog: catalogClient}

	if len(os.Args) < 2 {
		usage()
	}

	switch os.Args[1] {
	case "cart":
		runCart(ctx, cartStore)

	case "checkout":
		sess, err := beginCheckout(ctx, svc, events, cfg.ServiceName)
		if err != nil {
			log.Fatalf("checkout: %v", err)
		}
		printSummary(sess)

	case "pay":
		if len(os.Args) < 3 {
			usage()
		}
		sess, err := beginCheckout(ctx, svc, events, cfg.ServiceName)
		if err != nil {
			log.Fatalf("checkout: %v", err)
		}
		printSummary(sess)

		proof, err := booking.ProofFromFile(os.Args[2])
		if err != nil {
			log.Fatalf("proof: %v", err)
		}
		flow := booking.NewFlow(bookingClient, cartStore, draftStore)
		flow.SetProof(proof)

		res, err := flow.Submit(ctx, sess.Items)
		if err != nil {
			events.Emit(analytics.EventPaymentSubmitted, cfg.ServiceName, "unsubmitted",
				analytics.PaymentSubmittedPayload{Succeeded: false})
			for _, fe := range flow.FieldErrors() {
				log.Printf("  %s: %s", fe.Field, fe.Message)
			}
			log.Fatalf("payment: %v (state=%s)", err, flow.State())
		}
		events.Emit(analytics.EventPaymentSubmitted, cfg.ServiceName, res.BookingTrxID,
			analytics.PaymentSubmittedPayload{BookingTrxID: res.BookingTrxID, Succeeded: true})
		fmt.Printf("payment accepted, trx id %s\n", res.BookingTrxID)
		fmt.Printf("-> %s\n", res.NavigationTarget())

	case "lookup":
		if len(os.Args) < 4 {
			usage()
		}
		q := booking.Query{BookingTrxID: os.Args[2], Email: os.Args[3]}
		if errs := q.Validate(); len(errs) > 0 {
			for _, fe := range errs {
				log.Printf("  %s: %s", fe.Field, fe.Message)
			}
			os.Exit(1)
		}
		res, err := bookingClient.CheckBooking(ctx, q)
		if err != nil {
			log.Fatalf("lookup: %v", err)
		}
		events.Emit(analytics.EventBookingLookedUp, cfg.ServiceName, q.BookingTrxID,
			analytics.BookingLookedUpPayload{BookingTrxID: q.BookingTrxID, Found: res.Found})
		if !res.Found {
			fmt.Println("booking not found")
			return
		}
		fmt.Printf("booking found: %s\n", res.Order)

	default:
		usage()
	}
}

func openStore(ctx context.Context, cfg config.Config) (storage.Store, func(), error) {
	switch cfg.StorageDriver {
	case "redis":
		s := storage.NewRedisStore(cfg.RedisAddr, cfg.ServiceName)
		return s, func() { _ = s.Close() }, nil
	case "postgres":
		s, err := storage.NewPostgresStore(ctx, cfg.PostgresDSN, cfg.ServiceName)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	default:
		s, err := storage.NewFileStore(cfg.StorageDir)
		if err != nil {
			return nil, nil, err
		}
		return s, func() {}, nil
	}
}

func runCart(ctx context.Context, store *cart.Store) {
	if len(os.Args) < 3 {
		usage()
	}
	switch os.Args[2] {
	case "add":
		if len(os.Args) < 6 {
			usage()
		}
		id, err := strconv.Atoi(os.Args[3])
		if err != nil {
			log.Fatalf("cart: invalid cosmetic id %q", os.Args[3])
		}
		qty, err := strconv.Atoi(os.Args[5])
		if err != nil {
			log.Fatalf("cart: invalid quantity %q", os.Args[5])
		}
		if err := store.Add(ctx, cart.Item{CosmeticID: id, Slug: os.Args[4], Quantity: qty}); err != nil {
			log.Fatalf("cart: %v", err)
		}
	case "list":
		items, err := store.Load(ctx)
		if err != nil {
			log.Fatalf("cart: %v", err)
		}
		if len(items) == 0 {
			fmt.Println("cart is empty")
			return
		}
		for _, it := range items {
			fmt.Printf("%d x %s (id %d)\n", it.Quantity, it.Slug, it.CosmeticID)
		}
	case "clear":
		if err := store.Clear(ctx); err != nil {
			log.Fatalf("cart: %v", err)
		}
	default:
		usage()
	}
}

func beginCheckout(ctx context.Context, svc *checkout.Service, events *analytics.Producer, producer string) (*checkout.Session, error) {
	sess, err := svc.Begin(ctx)
	if errors.Is(err, checkout.ErrEmptyCart) {
		return nil, fmt.Errorf("cart is empty, add something first")
	}
	if err != nil {
		return nil, err
	}

	items := make([]analytics.LineQty, 0, len(sess.Items))
	for _, it := range sess.Items {
		items = append(items, analytics.LineQty{CosmeticID: it.CosmeticID, Quantity: it.Quantity})
	}
	events.Emit(analytics.EventCheckoutStarted, producer, "checkout", analytics.CheckoutStartedPayload{
		Items:         items,
		TotalQuantity: sess.Summary.TotalQuantity,
		Subtotal:      sess.Summary.Subtotal,
		Total:         sess.Summary.Total,
	})
	return sess, nil
}

func printSummary(sess *checkout.Session) {
	for _, ln := range sess.Lines {
		if !ln.Matched {
			fmt.Printf("%d x %s (no detail)\n", ln.Item.Quantity, ln.Item.Slug)
			continue
		}
		fmt.Printf("%d x %s @ %s\n", ln.Item.Quantity, ln.Detail.Name, pricing.FormatIDR(ln.Detail.Price))
	}
	s := sess.Summary
	fmt.Printf("subtotal: %s\n", pricing.FormatIDR(s.Subtotal))
	fmt.Printf("tax %d%%: %s\n", pricing.TaxRatePercent, pricing.FormatIDR(s.Tax))
	fmt.Printf("total: %s (%d items)\n", pricing.FormatIDR(s.Total), s.TotalQuantity)
}
