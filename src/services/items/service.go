package items

import (
	"context"
	"errors"
	"log"
	"time"

	DB "Backend-Procure/src/database"
	"Backend-Procure/src/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	itemCollection       *mongo.Collection
	csiCodeCollection    *mongo.Collection
	supplierCollection   *mongo.Collection
	serviceCollection    *mongo.Collection
	consumableCollection *mongo.Collection
	equipmentCollection  *mongo.Collection
)

func init() {
	if err := DB.ConnectMongoDB(); err != nil {
		log.Fatal("MongoDB connection error:", err)
	}

	itemCollection = DB.ItemCollection
	csiCodeCollection = DB.CSICodeCollection
	supplierCollection = DB.SupplierCollection
	serviceCollection = DB.ServiceCollection
	consumableCollection = DB.ConsumableItemCollection
	equipmentCollection = DB.EquipmentCollection
}

// CreateItem inserts a new general item for the team.
func CreateItem(ctx context.Context, item *models.Item) (*models.Item, error) {
	item.ID = primitive.NewObjectID()
	item.IsAvailable = true
	item.CreatedAt = time.Now()

	for i := range item.Descriptions {
		item.Descriptions[i].ID = primitive.NewObjectID()
		item.Descriptions[i].ItemID = item.ID
		item.Descriptions[i].Order = i + 1
	}

	if _, err := itemCollection.InsertOne(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// GetItems returns the team's items with pagination and name search.
func GetItems(ctx context.Context, teamID primitive.ObjectID, params models.PaginationParams) (*models.PaginatedResponse, error) {
	filter := bson.M{"teamId": teamID}
	if params.Search != "" {
		filter["generalName"] = bson.M{"$regex": params.Search, "$options": "i"}
	}

	total, err := itemCollection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, err
	}

	opts := options.Find().
		SetSkip(params.GetSkip()).
		SetLimit(int64(params.Limit)).
		SetSort(params.GetSortOrder())

	cursor, err := itemCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := []models.Item{}
	if err = cursor.All(ctx, &items); err != nil {
		return nil, err
	}

	return models.NewPaginatedResponse(items, total, params), nil
}

// GetItemByID returns one item.
func GetItemByID(ctx context.Context, id primitive.ObjectID) (*models.Item, error) {
	var item models.Item
	err := itemCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&item)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.New("item not found")
		}
		return nil, err
	}
	return &item, nil
}

// UpdateItem replaces an item's editable fields.
func UpdateItem(ctx context.Context, id primitive.ObjectID, item *models.Item) error {
	update := bson.M{"$set": bson.M{
		"generalName":  item.GeneralName,
		"unit":         item.Unit,
		"glAccount":    item.GLAccount,
		"divisions":    item.Divisions,
		"descriptions": item.Descriptions,
		"isAvailable":  item.IsAvailable,
	}}

	res, err := itemCollection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errors.New("item not found")
	}
	return nil
}

// DeleteItem removes an item.
func DeleteItem(ctx context.Context, id primitive.ObjectID) error {
	res, err := itemCollection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return errors.New("item not found")
	}
	return nil
}

// GetSupplier finds one supplier by name within the team.
func GetSupplier(ctx context.Context, teamID primitive.ObjectID, name string) (*models.Supplier, error) {
	var supplier models.Supplier
	err := supplierCollection.FindOne(ctx, bson.M{"teamId": teamID, "name": name}).Decode(&supplier)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.New("supplier not found")
		}
		return nil, err
	}
	return &supplier, nil
}

// GetSuppliers returns the team's suppliers filtered by a name prefix search.
func GetSuppliers(ctx context.Context, teamID primitive.ObjectID, params models.PaginationParams) (*models.PaginatedResponse, error) {
	filter := bson.M{"teamId": teamID}
	if params.Search != "" {
		filter["name"] = bson.M{"$regex": params.Search, "$options": "i"}
	}

	total, err := supplierCollection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, err
	}

	opts := options.Find().
		SetSkip(params.GetSkip()).
		SetLimit(int64(params.Limit)).
		SetSort(params.GetSortOrder())

	cursor, err := supplierCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	suppliers := []models.Supplier{}
	if err = cursor.All(ctx, &suppliers); err != nil {
		return nil, err
	}

	return models.NewPaginatedResponse(suppliers, total, params), nil
}
