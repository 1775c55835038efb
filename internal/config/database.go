package config

import (
	"context"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/fx"
)

type MongoDBConfig struct {
	URI      string
	Database string
}

func NewMongoDBConfig() *MongoDBConfig {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		log.Fatal("DB uri not set")
	}
	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "exam_timetabler"
	}
	return &MongoDBConfig{URI: uri, Database: dbName}
}

type MongoDBClient struct {
	Client   *mongo.Client
	Database *mongo.Database
}

func NewMongoDBClient(lc fx.Lifecycle, config *MongoDBConfig) (*MongoDBClient, *mongo.Database, error) {
	clientOptions := options.Client().ApplyURI(config.URI)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	err = client.Ping(ctx, nil)
	if err != nil {
		log.Fatalf("Failed to ping MongoDB: %v", err)
	}

	log.Println("Connected to MongoDB")

	lc.Append(fx.Hook{
		OnStart: func(Startctx context.Context) error {
			log.Println("MongoDB connection verified on startup")
			return nil
		},
		OnStop: func(Stopctx context.Context) error {
			log.Println("Closing MongoDB connection ...")
			return client.Disconnect(Stopctx)
		},
	})
	db := client.Database(config.Database)
	return &MongoDBClient{Client: client, Database: db}, db, nil
}

// UniqueMatricIndex enforces uniqueness of student matric numbers.
func UniqueMatricIndex(collection *mongo.Collection) {
	indexmodel := mongo.IndexModel{
		Keys:    bson.M{"matric_no": 1},
		Options: options.Index().SetUnique(true),
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	_, err := collection.Indexes().CreateOne(ctx, indexmodel)
	if err != nil {
		log.Fatal("Failed to create unique index on matric number:", err)
	}

	log.Println("Unique index on matric number created successfully")
}
