package items

import (
	"context"
	"errors"

	"Backend-Procure/src/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// TeamLookup implements formstate.Lookup against MongoDB, with the team
// context bound once so cascade rules stay keyed by value alone.
type TeamLookup struct {
	TeamID primitive.ObjectID
}

func NewTeamLookup(teamID primitive.ObjectID) *TeamLookup {
	return &TeamLookup{TeamID: teamID}
}

func (l *TeamLookup) GetItem(ctx context.Context, generalName string) (*models.Item, error) {
	var item models.Item
	err := itemCollection.FindOne(ctx, bson.M{
		"teamId":      l.TeamID,
		"generalName": generalName,
		"isAvailable": true,
	}).Decode(&item)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.New("item not found: " + generalName)
		}
		return nil, err
	}
	return &item, nil
}

func (l *TeamLookup) GetCSICode(ctx context.Context, description string) (*models.CSICode, error) {
	var csi models.CSICode
	err := csiCodeCollection.FindOne(ctx, bson.M{"description": description}).Decode(&csi)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.New("csi code not found: " + description)
		}
		return nil, err
	}
	return &csi, nil
}

func (l *TeamLookup) GetCSICodeOptionsForItems(ctx context.Context, divisions []string) ([]models.CSICode, error) {
	if len(divisions) == 0 {
		return nil, nil
	}

	opts := options.Find().SetSort(bson.D{{Key: "description", Value: 1}})
	cursor, err := csiCodeCollection.Find(ctx, bson.M{"divisionId": bson.M{"$in": divisions}}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var codes []models.CSICode
	if err = cursor.All(ctx, &codes); err != nil {
		return nil, err
	}
	return codes, nil
}

func (l *TeamLookup) GetService(ctx context.Context, name string) (*models.Service, error) {
	var svc models.Service
	err := serviceCollection.FindOne(ctx, bson.M{"teamId": l.TeamID, "name": name}).Decode(&svc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.New("service not found: " + name)
		}
		return nil, err
	}
	return &svc, nil
}

func (l *TeamLookup) GetConsumableItem(ctx context.Context, generalName string) (*models.ConsumableItem, error) {
	var item models.ConsumableItem
	err := consumableCollection.FindOne(ctx, bson.M{"teamId": l.TeamID, "generalName": generalName}).Decode(&item)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.New("consumable item not found: " + generalName)
		}
		return nil, err
	}
	return &item, nil
}

func (l *TeamLookup) GetConsumableOptions(ctx context.Context, category string) ([]string, error) {
	opts := options.Find().SetSort(bson.D{{Key: "generalName", Value: 1}})
	cursor, err := consumableCollection.Find(ctx, bson.M{"teamId": l.TeamID, "category": category}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var list []models.ConsumableItem
	if err = cursor.All(ctx, &list); err != nil {
		return nil, err
	}

	names := make([]string, len(list))
	for i, item := range list {
		names[i] = item.GeneralName
	}
	return names, nil
}

func (l *TeamLookup) GetEquipmentDescription(ctx context.Context, propertyNumber string) (*models.EquipmentDescription, error) {
	var equipment models.Equipment
	err := equipmentCollection.FindOne(ctx, bson.M{
		"teamId":                      l.TeamID,
		"descriptions.propertyNumber": propertyNumber,
	}).Decode(&equipment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.New("equipment not found: " + propertyNumber)
		}
		return nil, err
	}

	for i := range equipment.Descriptions {
		if equipment.Descriptions[i].PropertyNumber == propertyNumber {
			return &equipment.Descriptions[i], nil
		}
	}
	return nil, errors.New("equipment not found: " + propertyNumber)
}

func (l *TeamLookup) GetEquipmentPropertyOptions(ctx context.Context, category string) ([]string, error) {
	cursor, err := equipmentCollection.Find(ctx, bson.M{"teamId": l.TeamID, "category": category})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var list []models.Equipment
	if err = cursor.All(ctx, &list); err != nil {
		return nil, err
	}

	var numbers []string
	for _, e := range list {
		for _, d := range e.Descriptions {
			if d.IsAvailable {
				numbers = append(numbers, d.PropertyNumber)
			}
		}
	}
	return numbers, nil
}
