package equipment

import (
	"context"
	"errors"
	"log"

	DB "Backend-Procure/src/database"
	"Backend-Procure/src/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var equipmentCollection *mongo.Collection

func init() {
	if err := DB.ConnectMongoDB(); err != nil {
		log.Fatal("MongoDB connection error:", err)
	}

	equipmentCollection = DB.EquipmentCollection
}

// CreateEquipment inserts a new equipment record with its unit descriptions.
func CreateEquipment(ctx context.Context, equipment *models.Equipment) (*models.Equipment, error) {
	equipment.ID = primitive.NewObjectID()
	for i := range equipment.Descriptions {
		equipment.Descriptions[i].ID = primitive.NewObjectID()
		equipment.Descriptions[i].EquipmentID = equipment.ID
		equipment.Descriptions[i].IsAvailable = true
	}

	if _, err := equipmentCollection.InsertOne(ctx, equipment); err != nil {
		return nil, err
	}
	return equipment, nil
}

// GetEquipments lists the team's equipment with pagination and name search.
func GetEquipments(ctx context.Context, teamID primitive.ObjectID, params models.PaginationParams) (*models.PaginatedResponse, error) {
	filter := bson.M{"teamId": teamID}
	if params.Search != "" {
		filter["name"] = bson.M{"$regex": params.Search, "$options": "i"}
	}

	total, err := equipmentCollection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, err
	}

	opts := options.Find().
		SetSkip(params.GetSkip()).
		SetLimit(int64(params.Limit)).
		SetSort(params.GetSortOrder())

	cursor, err := equipmentCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	list := []models.Equipment{}
	if err = cursor.All(ctx, &list); err != nil {
		return nil, err
	}

	return models.NewPaginatedResponse(list, total, params), nil
}

// GetEquipmentByID returns one equipment record.
func GetEquipmentByID(ctx context.Context, id primitive.ObjectID) (*models.Equipment, error) {
	var equipment models.Equipment
	err := equipmentCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&equipment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.New("equipment not found")
		}
		return nil, err
	}
	return &equipment, nil
}

// UpdateEquipment replaces an equipment record's editable fields.
func UpdateEquipment(ctx context.Context, id primitive.ObjectID, equipment *models.Equipment) error {
	update := bson.M{"$set": bson.M{
		"name":         equipment.Name,
		"category":     equipment.Category,
		"descriptions": equipment.Descriptions,
	}}

	res, err := equipmentCollection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errors.New("equipment not found")
	}
	return nil
}

// DeleteEquipment removes an equipment record.
func DeleteEquipment(ctx context.Context, id primitive.ObjectID) error {
	res, err := equipmentCollection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return errors.New("equipment not found")
	}
	return nil
}
