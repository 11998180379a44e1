package paymentprovider_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/frahmantamala/worldsell/internal"
	"github.com/frahmantamala/worldsell/internal/core/events"
	"github.com/frahmantamala/worldsell/internal/paymentprovider"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func singleProviderCatalog(id string) *paymentprovider.Catalog {
	return paymentprovider.NewCatalog(
		[]paymentprovider.Country{{Code: "SN", Name: "Sénégal"}},
		[]paymentprovider.PaymentProvider{{
			ID:                 id,
			Name:               id,
			SupportedCountries: []string{"SN"},
			SupportedMethods:   []paymentprovider.PaymentMethod{{ID: "card", Name: "Card"}},
		}},
	)
}

var _ = Describe("Store", func() {
	var (
		ctx     context.Context
		slogger *slog.Logger
		calls   atomic.Int32
		loadErr error
	)

	BeforeEach(func() {
		ctx = context.Background()
		slogger = slog.New(slog.NewTextHandler(io.Discard, nil))
		calls.Store(0)
		loadErr = nil
	})

	newStore := func() *paymentprovider.Store {
		return paymentprovider.NewStore(paymentprovider.LoaderFunc(func(context.Context) (*paymentprovider.Catalog, error) {
			n := calls.Add(1)
			if loadErr != nil {
				return nil, loadErr
			}
			if n == 1 {
				return singleProviderCatalog("first"), nil
			}
			return singleProviderCatalog("second"), nil
		}), slogger)
	}

	It("should have no catalog before the first load", func() {
		store := newStore()
		Expect(store.Current()).To(BeNil())
		Expect(store.LoadedAt()).To(BeZero())
	})

	It("should publish the loaded catalog", func() {
		store := newStore()
		Expect(store.Load(ctx)).To(Succeed())

		Expect(providerIDs(store.Current().Providers())).To(Equal([]string{"first"}))
		Expect(store.LoadedAt()).NotTo(BeZero())
	})

	It("should swap in the new catalog on reload", func() {
		store := newStore()
		Expect(store.Load(ctx)).To(Succeed())

		catalog, err := store.Reload(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(providerIDs(catalog.Providers())).To(Equal([]string{"second"}))
		Expect(store.Current()).To(BeIdenticalTo(catalog))
	})

	It("should keep the previous snapshot when a reload fails", func() {
		store := newStore()
		Expect(store.Load(ctx)).To(Succeed())
		before := store.Current()
		loadedAt := store.LoadedAt()

		loadErr = errors.New("source down")
		_, err := store.Reload(ctx)
		Expect(err).To(MatchError(ContainSubstring("source down")))

		Expect(store.Current()).To(BeIdenticalTo(before))
		Expect(store.LoadedAt()).To(Equal(loadedAt))
	})

	It("should refuse a loader that returns no catalog", func() {
		store := paymentprovider.NewStore(paymentprovider.LoaderFunc(func(context.Context) (*paymentprovider.Catalog, error) {
			return nil, nil
		}), slogger)

		err := store.Load(ctx)
		Expect(errors.Is(err, internal.ErrCatalogUnavailable)).To(BeTrue())
		Expect(store.Current()).To(BeNil())
	})

	It("should serve readers while reloading", func() {
		store := newStore()
		Expect(store.Load(ctx)).To(Succeed())

		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				defer GinkgoRecover()
				for j := 0; j < 100; j++ {
					Expect(store.Current().Resolve("SN", paymentprovider.PaymentTypeCard)).To(HaveLen(1))
				}
			}()
		}
		for i := 0; i < 10; i++ {
			_, err := store.Reload(ctx)
			Expect(err).NotTo(HaveOccurred())
		}
		wg.Wait()
	})

	It("should wrap a prebuilt catalog with NewStaticStore", func() {
		store := paymentprovider.NewStaticStore(paymentprovider.DefaultCatalog(), slogger)
		Expect(store.Current()).NotTo(BeNil())
		Expect(store.LoadedAt()).NotTo(BeZero())
	})

	Describe("WithEvents", func() {
		It("should publish reloads with the provider diff", func() {
			bus := events.NewEventBus(slogger)
			var (
				mu       sync.Mutex
				received []events.CatalogReloaded
			)
			bus.Subscribe(events.EventCatalogReloaded, func(_ context.Context, e events.Event) error {
				mu.Lock()
				defer mu.Unlock()
				received = append(received, e.(events.CatalogReloaded))
				return nil
			})

			store := newStore().WithEvents(bus)
			Expect(store.Load(ctx)).To(Succeed())
			_, err := store.Reload(ctx)
			Expect(err).NotTo(HaveOccurred())
			bus.Wait()

			mu.Lock()
			defer mu.Unlock()
			Expect(received).To(HaveLen(2))

			var second events.CatalogReloaded
			for _, e := range received {
				if len(e.Removed) > 0 {
					second = e
				}
			}
			Expect(second.Added).To(Equal([]string{"second"}))
			Expect(second.Removed).To(Equal([]string{"first"}))
		})

		It("should publish failed reloads", func() {
			bus := events.NewEventBus(slogger)
			failures := make(chan events.CatalogReloadFailed, 1)
			bus.Subscribe(events.EventCatalogReloadFailed, func(_ context.Context, e events.Event) error {
				failures <- e.(events.CatalogReloadFailed)
				return nil
			})

			loadErr = errors.New("bad yaml")
			store := newStore().WithEvents(bus)
			Expect(store.Load(ctx)).NotTo(Succeed())

			var failure events.CatalogReloadFailed
			Eventually(failures).Should(Receive(&failure))
			Expect(failure.HasPrevious).To(BeFalse())
			Expect(failure.Err).To(MatchError("bad yaml"))
		})
	})

	Describe("StartRefresh", func() {
		It("should reload on schedule", func() {
			store := newStore()
			Expect(store.Load(ctx)).To(Succeed())

			Expect(store.StartRefresh("@every 1s")).To(Succeed())
			DeferCleanup(store.StopRefresh)

			Eventually(func() []string {
				return providerIDs(store.Current().Providers())
			}).WithTimeout(5 * time.Second).WithPolling(100 * time.Millisecond).Should(Equal([]string{"second"}))
		})

		It("should refuse a second schedule until the first is stopped", func() {
			store := newStore()
			Expect(store.StartRefresh("@every 1h")).To(Succeed())
			DeferCleanup(store.StopRefresh)

			Expect(store.StartRefresh("@every 1m")).To(MatchError(ContainSubstring("already running")))

			store.StopRefresh()
			Expect(store.StartRefresh("@every 1m")).To(Succeed())
		})

		It("should reject an invalid schedule", func() {
			store := newStore()
			Expect(store.StartRefresh("every now and then")).To(MatchError(ContainSubstring("invalid refresh schedule")))
			store.StopRefresh()
		})
	})
})
