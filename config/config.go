package config

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/ardanlabs/conf/v3"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const Prefix = "FOODHUB"

const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
	DriverMemory   = "memory"
)

type Config struct {
	Web       Web
	Log       Log
	Store     Store
	DB        DB
	Mongo     Mongo
	Redis     Redis
	Kafka     Kafka
	Pricing   Pricing
	RateLimit RateLimit
	QR        QR
}

type Web struct {
	Address         string        `conf:"default:0.0.0.0:8080"`
	ReadTimeout     time.Duration `conf:"default:5s"`
	WriteTimeout    time.Duration `conf:"default:10s"`
	IdleTimeout     time.Duration `conf:"default:120s"`
	ShutdownTimeout time.Duration `conf:"default:20s"`
}

type Log struct {
	Level string `conf:"default:info"`
}

type Store struct {
	Driver string `conf:"default:memory"`
	Seed   bool   `conf:"default:true"`
}

type DB struct {
	Host            string        `conf:"default:localhost"`
	Port            string        `conf:"default:5432"`
	Name            string        `conf:"default:foodhub"`
	User            string        `conf:"default:postgres"`
	Password        string        `conf:"default:postgres,mask"`
	SSLMode         string        `conf:"default:disable"`
	MaxOpenConns    int           `conf:"default:25"`
	MaxIdleConns    int           `conf:"default:5"`
	ConnMaxLifetime time.Duration `conf:"default:1h"`
}

type Mongo struct {
	URI            string        `conf:"default:mongodb://localhost:27017,mask"`
	Database       string        `conf:"default:foodhub"`
	ConnectTimeout time.Duration `conf:"default:10s"`
}

type Redis struct {
	Enabled       bool          `conf:"default:false"`
	Host          string        `conf:"default:localhost"`
	Port          string        `conf:"default:6379"`
	Password      string        `conf:"mask"`
	RestaurantTTL time.Duration `conf:"default:5m"`
}

type Kafka struct {
	Enabled bool   `conf:"default:false"`
	Broker  string `conf:"default:localhost:9092"`
	Topic   string `conf:"default:foodhub-events"`
	GroupID string `conf:"default:coupon-redemptions"`
}

type Pricing struct {
	DeliveryFee string `conf:"default:50.00"`
	TaxRate     string `conf:"default:0.05"`
}

type RateLimit struct {
	Burst    int           `conf:"default:5"`
	Interval time.Duration `conf:"default:1s"`
	Expiry   time.Duration `conf:"default:10m"`
}

type QR struct {
	BaseURL string `conf:"default:http://localhost:8080"`
}

// Load reads an optional .env file and then the FOODHUB_* environment and
// command line flags.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("loading .env: %w", err)
	}

	var cfg Config
	help, err := conf.Parse(Prefix, &cfg)
	if err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			fmt.Println(help)
		}
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}

	switch cfg.Store.Driver {
	case DriverPostgres, DriverMongo, DriverMemory:
	default:
		return Config{}, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
	if _, _, err := cfg.Pricing.Amounts(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Amounts parses the delivery fee and the tax rate.
func (p Pricing) Amounts() (deliveryFee, taxRate decimal.Decimal, err error) {
	if deliveryFee, err = decimal.NewFromString(p.DeliveryFee); err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("pricing delivery fee: %w", err)
	}
	if taxRate, err = decimal.NewFromString(p.TaxRate); err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("pricing tax rate: %w", err)
	}
	if deliveryFee.IsNegative() || taxRate.IsNegative() {
		return decimal.Zero, decimal.Zero, errors.New("pricing values must not be negative")
	}
	return deliveryFee, taxRate, nil
}

func NewLogger(cfg Log) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)
	log.SetFormatter(&logrus.JSONFormatter{})

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	return log
}

func (d DB) ConnString() string {
	return "host=" + d.Host + " port=" + d.Port + " user=" + d.User +
		" password=" + d.Password + " dbname=" + d.Name + " sslmode=" + d.SSLMode
}

func MustInitPostgres(cfg DB, log logrus.FieldLogger) *sql.DB {
	db, err := sql.Open("postgres", cfg.ConnString())
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}

	if err = db.Ping(); err != nil {
		log.WithError(err).Fatal("failed to ping database")
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	return db
}

func MustInitMongo(cfg Mongo, log logrus.FieldLogger) *mongo.Client {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		log.WithError(err).Fatal("failed to connect to mongo")
	}
	if err := client.Ping(ctx, nil); err != nil {
		log.WithError(err).Fatal("failed to ping mongo")
	}
	return client
}

func MustInitRedis(cfg Redis, log logrus.FieldLogger) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Host + ":" + cfg.Port,
		Password: cfg.Password,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.WithError(err).Fatal("failed to connect to redis")
	}

	return client
}

func NewKafkaReader(cfg Kafka) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers: []string{cfg.Broker},
		Topic:   cfg.Topic,
		GroupID: cfg.GroupID,
	})
}

func NewKafkaWriter(cfg Kafka) *kafka.Writer {
	return &kafka.Writer{
		Addr:     kafka.TCP(cfg.Broker),
		Topic:    cfg.Topic,
		Balancer: &kafka.Hash{},
	}
}
