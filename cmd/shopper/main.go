// Command shopper is a terminal storefront client. It talks to the storefront
// API for catalog and orders, keeps cart and wishlist state in the configured
// backend, and prints the rendered page fragments after each action.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/happyshop/storefront/internal/catalog"
	"github.com/happyshop/storefront/internal/kv"
	"github.com/happyshop/storefront/internal/orders"
	"github.com/happyshop/storefront/internal/session"
	"github.com/happyshop/storefront/internal/view"
)

type config struct {
	APIURL       string `env:"API_URL,default=http://localhost:10000"`
	StoreBackend string `env:"STORE_BACKEND,default=file"`
	StateDir     string `env:"STATE_DIR,default=.storefront-state"`
	RedisAddr    string `env:"REDIS_ADDR,default=localhost:6379"`
	LogLevel     string `env:"LOG_LEVEL,default=warn"`
}

// toastPrinter surfaces engine notifications on the terminal.
type toastPrinter struct{}

func (toastPrinter) Notify(message string) { fmt.Printf("  * %s\n", message) }

func main() {
	_ = godotenv.Load()

	var cfg config
	if err := envdecode.Decode(&cfg); err != nil {
		fallback := zerolog.New(os.Stderr)
		fallback.Fatal().Err(err).Msg("failed to decode config")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.WarnLevel
	}
	log := zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()

	ctx := context.Background()
	store := newStore(ctx, cfg, log)

	sess := session.Start(ctx, session.Config{
		Store:    store,
		Catalog:  catalog.NewClient(cfg.APIURL),
		Orders:   orders.NewClient(cfg.APIURL),
		Notifier: toastPrinter{},
		Logger:   log,
		Page:     homePage(""),
	})
	defer sess.Close()

	page := homePage("")
	show(sess, page)
	repl(ctx, sess, &page)
}

// newStore builds the persistence backend named by STORE_BACKEND. The redis
// backend fails fast when the server is unreachable; the engines themselves
// degrade to in-memory state only on later save failures.
func newStore(ctx context.Context, cfg config, log zerolog.Logger) kv.Store {
	switch cfg.StoreBackend {
	case "file":
		store, err := kv.NewFileStore(cfg.StateDir)
		if err != nil {
			log.Fatal().Err(err).Str("dir", cfg.StateDir).Msg("failed to open state directory")
		}
		return store
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			log.Fatal().Err(err).Str("addr", cfg.RedisAddr).Msg("failed to connect to redis")
		}
		log.Info().Str("addr", cfg.RedisAddr).Msg("connected to redis")
		return kv.NewRedisStore(client)
	case "memory":
		return kv.NewMemoryStore()
	default:
		log.Fatal().Str("backend", cfg.StoreBackend).Msg("unknown store backend, want file, redis or memory")
		return nil
	}
}

func repl(ctx context.Context, sess *session.Session, page *view.Page) {
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Println(`commands: shop [category] | view <id> | wishlist | checkout | add <id> | qty <id> <delta> | remove <id> | wish <id> | cart | deal | place <name> | quit`)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		cmd, args := fields[0], fields[1:]

		switch cmd {
		case "quit", "exit":
			return
		case "shop", "home":
			*page = homePage(strings.Join(args, " "))
			sess.Navigate(*page)
		case "view":
			id, ok := parseID(args)
			if !ok {
				continue
			}
			*page = view.Page{Name: "product", Fragments: []view.Fragment{view.FragmentDetail, view.FragmentCartDrawer}, ProductID: id}
			if _, err := sess.Catalog.Resolve(ctx, id); err != nil {
				fmt.Println("  product unavailable:", err)
			}
			sess.Navigate(*page)
		case "wishlist":
			*page = view.Page{Name: "wishlist", Fragments: []view.Fragment{view.FragmentWishlist, view.FragmentCartDrawer}}
			sess.Navigate(*page)
		case "checkout":
			*page = view.Page{Name: "checkout", Fragments: []view.Fragment{view.FragmentCheckout}}
			sess.Navigate(*page)
		case "add":
			if id, ok := parseID(args); ok {
				if err := sess.Cart.Add(ctx, id); err != nil {
					fmt.Println("  could not add:", err)
				}
			}
		case "qty":
			if len(args) == 2 {
				id, err1 := strconv.ParseInt(args[0], 10, 64)
				delta, err2 := strconv.Atoi(args[1])
				if err1 == nil && err2 == nil {
					sess.Cart.UpdateQuantity(ctx, id, delta)
				}
			}
		case "remove":
			if id, ok := parseID(args); ok {
				sess.Cart.Remove(ctx, id)
			}
		case "wish":
			if id, ok := parseID(args); ok {
				sess.Wishlist.Toggle(ctx, id)
			}
		case "cart":
			sess.View.OpenDrawer()
		case "deal":
			r := sess.Deal.Tick(time.Now())
			fmt.Printf("  deal ends in %s:%s:%s:%s\n", r.Days, r.Hours, r.Minutes, r.Seconds)
		case "place":
			conf, err := sess.Checkout.Place(ctx, orders.Address{Name: strings.Join(args, " ")})
			if err != nil {
				fmt.Println("  order failed:", err)
				continue
			}
			fmt.Printf("  %s (%s)\n", conf.Message, conf.OrderNumber)
		default:
			fmt.Println("  unknown command:", cmd)
			continue
		}
		show(sess, *page)
	}
}

func homePage(category string) view.Page {
	return view.Page{
		Name:      "home",
		Fragments: []view.Fragment{view.FragmentGrid, view.FragmentCartDrawer},
		Category:  category,
	}
}

func show(sess *session.Session, page view.Page) {
	fmt.Printf("[%s] cart %s | wishlist %s | drawer %s\n",
		page.Name, sess.View.CartBadge(), sess.View.WishlistBadge(), sess.View.Drawer())
	for _, f := range page.Fragments {
		if f == view.FragmentCartDrawer && sess.View.Drawer() != view.DrawerOpen {
			continue
		}
		if html, ok := sess.View.HTML(f); ok {
			fmt.Println(html)
		}
	}
}

func parseID(args []string) (int64, bool) {
	if len(args) != 1 {
		return 0, false
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Println("  not a product id:", args[0])
		return 0, false
	}
	return id, true
}
