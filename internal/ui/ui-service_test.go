package ui_test

import (
	"math"
	"testing"

	"github.com/Arnispl/VendingMachine/currency"
	"github.com/Arnispl/VendingMachine/internal/machine"
	"github.com/Arnispl/VendingMachine/internal/ui"
	ui_config "github.com/Arnispl/VendingMachine/internal/ui/config"
	tele_api "github.com/Arnispl/VendingMachine/tele"
	"github.com/c-bata/go-prompt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func documentWithText(s string) prompt.Document {
	buf := prompt.NewBuffer()
	buf.InsertText(s, false, true)
	return *buf.Document()
}

func serviceConfig(auth bool) ui_config.Config {
	config := ui_config.Config{}
	config.Service.Enable = true
	config.Service.ReportOnEnd = true
	if auth {
		config.Service.Auth.Enable = true
		config.Service.Auth.Passwords = []string{"lemz1g"}
		config.Service.Auth.SecretSalt = "test"
	}
	return config
}

func TestVisualHash(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "lemz1g", ui.VisualHash([]byte("1970"), []byte("test")))
	assert.NotEqual(t, "lemz1g", ui.VisualHash([]byte("1971"), []byte("test")))
}

func TestServiceAuth(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, serviceConfig(true))

	assert.Equal(t, "Service mode required.\n", env.run(t, "add 1.00 1 Tea"))
	assert.Equal(t, "Access denied.\nAccess denied.\n", env.run(t, "service", "service 1971"))
	assert.Equal(t, ui.StateFront, env.ui.State())

	assert.Equal(t, "Service mode.\n", env.run(t, "service 1970"))
	assert.Equal(t, ui.StateService, env.ui.State())
	assert.Equal(t, "Product Tea added.\n", env.run(t, "add 1.00 1 Tea"))
	assert.Equal(t, "Service mode ended.\n", env.run(t, "end"))
	assert.Equal(t, ui.StateFront, env.ui.State())

	env.tele.Lock()
	defer env.tele.Unlock()
	assert.Equal(t, []tele_api.State{tele_api.State_Nominal, tele_api.State_Service, tele_api.State_Nominal}, env.tele.states)
	require.Len(t, env.tele.reports, 1, "report on service end")
	assert.True(t, env.tele.serviceTags[0])
	require.Len(t, env.tele.reports[0].Products, 4)
	assert.Equal(t, "Tea", env.tele.reports[0].Products[3].Name)
}

func TestServiceCatalog(t *testing.T) {
	t.Parallel()
	type Case struct {
		name   string
		input  []string
		expect string
		check  func(t testing.TB, env *tenv)
	}
	cases := []Case{
		{"add-new", []string{"add 0.80 3 Energy Bar"}, "Product Energy Bar added.\n",
			func(t testing.TB, env *tenv) {
				p, err := env.vm.Product(4)
				require.NoError(t, err)
				assert.Equal(t, "Energy Bar", p.Name)
				assert.Equal(t, currency.NewMoney(0, 80), p.Price)
				assert.Equal(t, 3, p.Available)
			}},
		{"add-merge", []string{"add 9.99 5 Water"}, "Product Water added.\n",
			func(t testing.TB, env *tenv) {
				p, _ := env.vm.Product(2)
				assert.Equal(t, currency.NewMoney(1, 40), p.Price)
				assert.Equal(t, 6, p.Available)
				assert.Equal(t, 3, env.vm.Len())
			}},
		{"add-negative-price", []string{"add -1.00 1 Tea"}, "The price can not be negative\n", nil},
		{"add-negative-count", []string{"add 1.00 -1 Tea"}, "The product count can not be negative\n", nil},
		{"add-usage", []string{"add 1.00 1"}, "Usage: add <price> <count> <name>\n", nil},
		{"add-parse", []string{"add 1.234 1 Tea"}, "Invalid input: 1.234\n", nil},
		{"update-keep-price", []string{"update 0 - 7 Cola"}, "Product 0 updated.\n",
			func(t testing.TB, env *tenv) {
				p, _ := env.vm.Product(1)
				assert.Equal(t, "Cola", p.Name)
				assert.Equal(t, currency.NewMoney(1, 50), p.Price)
				assert.Equal(t, 7, p.Available)
			}},
		{"update-valid-price", []string{"update 1 2.00 4 Water"}, "Product 1 updated.\n",
			func(t testing.TB, env *tenv) {
				p, _ := env.vm.Product(2)
				assert.Equal(t, currency.NewMoney(2, 0), p.Price)
			}},
		{"update-price-not-coin", []string{"update 1 1.50 4 Water"}, "Product 1 updated.\n",
			func(t testing.TB, env *tenv) {
				p, _ := env.vm.Product(2)
				assert.Equal(t, currency.NewMoney(1, 40), p.Price)
				assert.Equal(t, 4, p.Available)
			}},
		{"update-index", []string{"update 3 - 1 X", "update -1 - 1 X"}, "The product is not existing\nThe product is not existing\n", nil},
		{"update-negative-count", []string{"update 0 - -1 Cola"}, "The product count can not be negative\n", nil},
		{"report", []string{"report"}, "Report queued.\n",
			func(t testing.TB, env *tenv) {
				env.tele.Lock()
				defer env.tele.Unlock()
				require.Len(t, env.tele.reports, 1)
				assert.False(t, env.tele.serviceTags[0])
				assert.Len(t, env.tele.reports[0].Products, 3)
			}},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()
			env := newTestEnv(t, serviceConfig(false))
			assert.Equal(t, c.expect, env.run(t, c.input...))
			if c.check != nil {
				c.check(t, env)
			}
		})
	}
}

func TestCollect(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, serviceConfig(false))
	env.run(t, "insert 1 0", "insert 0 50", "insert 0.50", "insert 0 5", "return")
	assert.Equal(t, "Collected 2 Euros and 0 Cents.\n", env.run(t, "collect"))
	assert.Equal(t, "Collected 0 Euros and 0 Cents.\n", env.run(t, "collect"))

	env.tele.stat.Lock()
	defer env.tele.stat.Unlock()
	assert.Equal(t, uint32(2), env.tele.stat.CoinAccepted[50])
}

func TestInventoryClamp(t *testing.T) {
	t.Parallel()
	vm := machine.New("test", []machine.Product{
		{Name: "Yacht", Price: currency.NewMoney(50000000, 0), Available: math.MaxInt},
		{Name: "Gum", Price: currency.NewMoney(0, 20), Available: 3},
	})
	inv := ui.Inventory(vm)
	require.Len(t, inv.Products, 2)
	assert.Equal(t, uint32(math.MaxUint32), inv.Products[0].Price)
	assert.Equal(t, int32(math.MaxInt32), inv.Products[0].Available)
	assert.Equal(t, uint32(20), inv.Products[1].Price)
	assert.Equal(t, int32(3), inv.Products[1].Available)
	assert.Equal(t, uint32(0), inv.Balance)
}
