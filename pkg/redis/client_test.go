package redis

import (
	"context"
	"testing"
	"time"

	"github.com/farm2home/storefront-backend/pkg/config"
	goredis "github.com/redis/go-redis/v9"
)

type fakeStore struct {
	values map[string]string
}

func newFakeStore() *fakeStore {
	return &fakeStore{values: map[string]string{}}
}

func (f *fakeStore) Ping(ctx context.Context) *goredis.StatusCmd {
	cmd := goredis.NewStatusCmd(ctx)
	cmd.SetVal("PONG")
	return cmd
}

func (f *fakeStore) Set(ctx context.Context, key string, value any, _ time.Duration) *goredis.StatusCmd {
	cmd := goredis.NewStatusCmd(ctx)
	f.values[key] = toString(value)
	cmd.SetVal("OK")
	return cmd
}

func (f *fakeStore) Get(ctx context.Context, key string) *goredis.StringCmd {
	cmd := goredis.NewStringCmd(ctx)
	val, ok := f.values[key]
	if !ok {
		cmd.SetErr(goredis.Nil)
		return cmd
	}
	cmd.SetVal(val)
	return cmd
}

func (f *fakeStore) Del(ctx context.Context, keys ...string) *goredis.IntCmd {
	cmd := goredis.NewIntCmd(ctx)
	var deleted int64
	for _, key := range keys {
		if _, ok := f.values[key]; ok {
			delete(f.values, key)
			deleted++
		}
	}
	cmd.SetVal(deleted)
	return cmd
}

func toString(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return ""
	}
}

func TestClientSetGetDel(t *testing.T) {
	client := &Client{store: newFakeStore()}
	ctx := context.Background()

	key := client.CartKey("42")
	if err := client.Set(ctx, key, `[{"product_id":1}]`, 0); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}

	got, err := client.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got != `[{"product_id":1}]` {
		t.Fatalf("unexpected value %q", got)
	}

	if err := client.Del(ctx, key); err != nil {
		t.Fatalf("Del returned error: %v", err)
	}
	if _, err := client.Get(ctx, key); err != ErrKeyMissing {
		t.Fatalf("expected ErrKeyMissing after delete, got %v", err)
	}
}

func TestKeyHelpersAreNamespaced(t *testing.T) {
	client := &Client{}

	if got := client.CartKey("7"); got != "f2h:cart:7" {
		t.Fatalf("unexpected cart key %q", got)
	}
	if got := client.ViewPrefKey("7"); got != "f2h:view_pref:7" {
		t.Fatalf("unexpected view pref key %q", got)
	}
	if got := client.PaymentMethodsKey("7"); got != "f2h:payment_methods:7" {
		t.Fatalf("unexpected payment methods key %q", got)
	}
}

func TestOptionsFromConfigRequiresTarget(t *testing.T) {
	if _, err := optionsFromConfig(config.RedisConfig{}); err == nil {
		t.Fatal("expected error when neither url nor address configured")
	}
}

func TestOptionsFromConfigAppliesDefaults(t *testing.T) {
	opts, err := optionsFromConfig(config.RedisConfig{
		Address:     "localhost:6379",
		PoolSize:    12,
		DialTimeout: 3 * time.Second,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.PoolSize != 12 {
		t.Fatalf("expected pool size 12, got %d", opts.PoolSize)
	}
	if opts.DialTimeout != 3*time.Second {
		t.Fatalf("expected dial timeout 3s, got %v", opts.DialTimeout)
	}
}
