package database

import (
	"context"
	"log"
	"os"
	"sync"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const DBName = "ProcureDB"

var (
	client     *mongo.Client
	once       sync.Once // connect only once
	connectErr error

	FormCollection            *mongo.Collection
	RequestCollection         *mongo.Collection
	ItemCollection            *mongo.Collection
	CSICodeCollection         *mongo.Collection
	SupplierCollection        *mongo.Collection
	ServiceCollection         *mongo.Collection
	ConsumableItemCollection  *mongo.Collection
	EquipmentCollection       *mongo.Collection
	ProjectCollection         *mongo.Collection
	TeamMemberCollection      *mongo.Collection
	SignerCollection          *mongo.Collection
	SpecialApproverCollection *mongo.Collection
	NotificationCollection    *mongo.Collection
	UserCollection            *mongo.Collection
)

// ConnectMongoDB connects to MongoDB exactly once and wires the collection registry.
func ConnectMongoDB() error {

	err := godotenv.Load()
	if err != nil {
		log.Println("⚠️ Warning: No .env file found")
	}

	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		log.Fatal("❌ MONGO_URI environment variable not set. Please create a .env file and set it.")
	}

	once.Do(func() {
		clientOptions := options.Client().ApplyURI(mongoURI)

		client, connectErr = mongo.Connect(context.TODO(), clientOptions)
		if connectErr != nil {
			log.Fatal("❌ Failed to connect to MongoDB:", connectErr)
			return
		}

		connectErr = client.Ping(context.TODO(), readpref.Primary())
		if connectErr != nil {
			log.Fatal("❌ MongoDB ping failed:", connectErr)
			return
		}

		FormCollection = GetCollection(DBName, "forms")
		RequestCollection = GetCollection(DBName, "requests")
		ItemCollection = GetCollection(DBName, "items")
		CSICodeCollection = GetCollection(DBName, "csiCodes")
		SupplierCollection = GetCollection(DBName, "suppliers")
		ServiceCollection = GetCollection(DBName, "services")
		ConsumableItemCollection = GetCollection(DBName, "consumableItems")
		EquipmentCollection = GetCollection(DBName, "equipments")
		ProjectCollection = GetCollection(DBName, "projects")
		TeamMemberCollection = GetCollection(DBName, "teamMembers")
		SignerCollection = GetCollection(DBName, "signers")
		SpecialApproverCollection = GetCollection(DBName, "specialApprovers")
		NotificationCollection = GetCollection(DBName, "notifications")
		UserCollection = GetCollection(DBName, "users")

		log.Println("✅ MongoDB connected successfully")
	})

	return connectErr
}

// GetCollection returns a collection handle from the shared client.
func GetCollection(dbName, collectionName string) *mongo.Collection {
	if client == nil {
		log.Fatal("❌ MongoDB client is nil")
	}
	return client.Database(dbName).Collection(collectionName)
}
