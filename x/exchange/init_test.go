package exchange

import (
	"encoding/json"
	"fmt"
	"testing"

	voucherx "github.com/vx-one/voucherx"
	"github.com/vx-one/voucherx/store"
	"github.com/vx-one/voucherx/voucherxtest"
	"github.com/vx-one/voucherx/voucherxtest/assert"
)

func TestGenesisInitializer(t *testing.T) {
	var (
		authority = voucherxtest.NewCondition().Address()
		feeDest   = voucherxtest.NewCondition().Address()
	)

	const genesis = `
	{
		"exchange": {
			"authority": %q,
			"fee_basis_points": 250,
			"fee_destination": %q
		}
	}
	`
	raw := fmt.Sprintf(genesis, authority.String(), feeDest.String())
	var opts voucherx.Options
	assert.Nil(t, json.Unmarshal([]byte(raw), &opts))

	db := store.MemStore()
	var ini Initializer
	assert.Nil(t, ini.FromGenesis(opts, db))

	c := newController(nil, nil)
	exchange, err := c.loadExchange(db)
	assert.Nil(t, err)
	assert.Equal(t, authority, exchange.Authority)
	assert.Equal(t, uint32(250), exchange.FeeBasisPoints)
	assert.Equal(t, feeDest, exchange.FeeDestination)
}

func TestGenesisInitializerEmpty(t *testing.T) {
	var opts voucherx.Options
	assert.Nil(t, json.Unmarshal([]byte(`{}`), &opts))

	db := store.MemStore()
	var ini Initializer
	assert.Nil(t, ini.FromGenesis(opts, db))

	c := newController(nil, nil)
	if _, err := c.loadExchange(db); err == nil {
		t.Fatal("want uninitialized exchange")
	}
}
