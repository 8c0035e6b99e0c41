package suites

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/storefront-qa/pageflow/internal/dataset"
	"github.com/storefront-qa/pageflow/internal/pages"
	"github.com/storefront-qa/pageflow/internal/pages/pagestest"
	"github.com/storefront-qa/pageflow/internal/scenario"
	"github.com/storefront-qa/pageflow/internal/wait"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	baseURL   = "https://storefront.test/client"
	retailURL = "https://retail.test/"
)

func newRunner(sf *pagestest.Storefront, retries int) *scenario.Runner {
	opts := scenario.DefaultOptions()
	opts.Retry = scenario.RetryPolicy{MaxRetries: retries}
	opts.Wait = wait.Options{Timeout: 50 * time.Millisecond, PollInterval: 2 * time.Millisecond, SettleDelay: -1}
	logger, _ := test.NewNullLogger()
	return scenario.NewRunner(sf, opts, logger)
}

func testConfig() Config {
	return Config{
		BaseURL:   baseURL,
		RetailURL: retailURL,
		Purchases: dataset.Default(),
	}
}

func TestAll_PassAgainstStorefront(t *testing.T) {
	// GIVEN the storefront and the retail site serving every header entry
	sf := pagestest.New()
	sf.ServeRetail(retailURL, DefaultRetailEntries...)
	runner := newRunner(sf, 0)

	// WHEN every journey runs
	summary := runner.RunAll(context.Background(), All(testConfig()))

	// THEN all pass and the purchases reached the order history
	for _, r := range summary.Results {
		assert.NoError(t, r.Err, r.Name)
	}
	assert.Equal(t, 0, summary.Failed())
	assert.Equal(t, 2+3+len(DefaultRetailEntries), summary.Passed())
	assert.Contains(t, sf.Orders(HistoryEmail), HistoryProduct)
	assert.Contains(t, sf.Orders("shetty@gmail.com"), HistoryProduct)
	assert.Equal(t, "India", sf.Country())
}

func TestStorefront_Names(t *testing.T) {
	names := []string{}
	for _, s := range Storefront(testConfig()) {
		names = append(names, s.Name)
	}

	assert.Equal(t, []string{
		"submit order anshika@gmail.com IPHONE 13 PRO",
		"submit order shetty@gmail.com IPHONE 13 PRO",
		"login error validation",
		"product error validation",
		"order history",
	}, names)
}

func TestRetail_DefaultsEntries(t *testing.T) {
	tests := []struct {
		name    string
		entries []string
		want    int
	}{
		{name: "defaults", want: len(DefaultRetailEntries)},
		{name: "configured", entries: []string{"Electro"}, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.RetailEntries = tt.entries
			assert.Len(t, Retail(cfg), tt.want)
		})
	}
}

func TestPurchase_Failures(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(sf *pagestest.Storefront)
		purchase dataset.Purchase
		wantKind scenario.Kind
	}{
		{
			name:     "product missing from catalogue",
			purchase: dataset.Purchase{Email: HistoryEmail, Password: HistoryPassword, Product: "NOKIA 3310"},
			wantKind: scenario.KindNotFound,
		},
		{
			name:     "wrong password never reaches the catalogue",
			purchase: dataset.Purchase{Email: HistoryEmail, Password: "nope", Product: HistoryProduct},
			wantKind: scenario.KindTimeout,
		},
		{
			name:     "no country matches the query",
			setup:    func(sf *pagestest.Storefront) { sf.SetCountries("Spain") },
			purchase: dataset.Purchase{Email: HistoryEmail, Password: HistoryPassword, Product: HistoryProduct},
			wantKind: scenario.KindTimeout,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// GIVEN
			sf := pagestest.New()
			if tt.setup != nil {
				tt.setup(sf)
			}

			// WHEN
			res := newRunner(sf, 0).Run(context.Background(), tt.name, Purchase(baseURL, tt.purchase))

			// THEN
			require.Error(t, res.Err)
			assert.Equal(t, tt.wantKind, scenario.KindOf(res.Err))
			assert.Empty(t, sf.Orders(tt.purchase.Email))
		})
	}
}

func TestLoginError_FailsWhenLoginSucceeds(t *testing.T) {
	// GIVEN an account whose password is the one the journey treats as wrong
	sf := pagestest.New()
	runner := newRunner(sf, 0)

	// WHEN the correct credentials are checked by the login error journey
	res := runner.Run(context.Background(), "login error validation", func(ctx context.Context, sc *scenario.Context) error {
		landing, err := sc.Flow.OpenLanding(ctx, baseURL)
		if err != nil {
			return err
		}
		if _, err := landing.Login(ctx, HistoryEmail, HistoryPassword); err != nil {
			return err
		}
		_, err = landing.ErrorMessage(ctx)
		return err
	})

	// THEN no toast shows up on the landing screen
	require.Error(t, res.Err)
	assert.Equal(t, scenario.KindTimeout, scenario.KindOf(res.Err))
}

func TestProductError_FailsOnMatchingProduct(t *testing.T) {
	sf := pagestest.New()
	sf.SetProducts(ErrorProduct, ErrorLookalike)
	runner := newRunner(sf, 0)

	// the lookalike itself is in the cart when it is what was added
	res := runner.Run(context.Background(), "lookalike", func(ctx context.Context, sc *scenario.Context) error {
		landing, err := sc.Flow.OpenLanding(ctx, baseURL)
		if err != nil {
			return err
		}
		catalogue, err := landing.Login(ctx, HistoryEmail, HistoryPassword)
		if err != nil {
			return err
		}
		if err := catalogue.AddToCart(ctx, ErrorLookalike); err != nil {
			return err
		}
		return ProductError(baseURL)(ctx, sc)
	})

	require.Error(t, res.Err)
	assert.Equal(t, scenario.KindAssertion, scenario.KindOf(res.Err))
}

func TestOrderHistory_EmptyHistoryFails(t *testing.T) {
	sf := pagestest.New()

	res := newRunner(sf, 1).Run(context.Background(), "order history", OrderHistory(baseURL))

	require.Error(t, res.Err)
	assert.Len(t, res.Attempts, 2)
	assert.Equal(t, scenario.KindAssertion, scenario.KindOf(res.Err))
	assert.Equal(t, pages.ScreenOrders, res.Attempts[1].Screen)
}

func TestOrderHistory_SeededOrder(t *testing.T) {
	sf := pagestest.New()
	sf.AddOrder(HistoryEmail, HistoryProduct)

	res := newRunner(sf, 0).Run(context.Background(), "order history", OrderHistory(baseURL))

	assert.NoError(t, res.Err)
}

func TestRetailHeader(t *testing.T) {
	tests := []struct {
		name     string
		served   []string
		entry    string
		wantKind scenario.Kind
	}{
		{name: "entry displayed", served: []string{"Electro"}, entry: "Electro"},
		{name: "entry missing", served: []string{"Hardware"}, entry: "Electro", wantKind: scenario.KindAssertion},
		{name: "unknown entry", served: DefaultRetailEntries, entry: "Ofertas", wantKind: scenario.KindAssertion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sf := pagestest.New()
			sf.ServeRetail(retailURL, tt.served...)

			res := newRunner(sf, 0).Run(context.Background(), tt.name, RetailHeader(retailURL, tt.entry))

			assert.Equal(t, tt.wantKind, scenario.KindOf(res.Err))
		})
	}
}
