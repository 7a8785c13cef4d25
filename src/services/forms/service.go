package forms

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	DB "Backend-Procure/src/database"
	"Backend-Procure/src/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var formCollection *mongo.Collection

func init() {
	if err := DB.ConnectMongoDB(); err != nil {
		log.Fatal("MongoDB connection error:", err)
	}

	formCollection = DB.FormCollection
}

// CreateForm creates a new form template with its sections, fields and
// default signers.
func CreateForm(ctx context.Context, form *models.Form) (*models.Form, error) {
	if err := validateTemplate(form); err != nil {
		return nil, err
	}

	now := time.Now()
	form.ID = primitive.NewObjectID()
	form.CreatedAt = now
	form.UpdatedAt = now
	stampTemplate(form)

	if _, err := formCollection.InsertOne(ctx, form); err != nil {
		return nil, err
	}
	return form, nil
}

// GetForms lists the team's visible form templates with pagination.
func GetForms(ctx context.Context, teamID primitive.ObjectID, params models.PaginationParams) (*models.PaginatedResponse, error) {
	filter := bson.M{"teamId": teamID, "isHidden": false}
	if params.Search != "" {
		filter["name"] = bson.M{"$regex": params.Search, "$options": "i"}
	}

	total, err := formCollection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, err
	}

	opts := options.Find().
		SetSkip(params.GetSkip()).
		SetLimit(int64(params.Limit)).
		SetSort(params.GetSortOrder())

	cursor, err := formCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	forms := []models.Form{}
	if err = cursor.All(ctx, &forms); err != nil {
		return nil, err
	}

	return models.NewPaginatedResponse(forms, total, params), nil
}

// GetFormByID returns one template with sections ordered.
func GetFormByID(ctx context.Context, id primitive.ObjectID) (*models.Form, error) {
	var form models.Form
	err := formCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&form)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.New("form not found")
		}
		return nil, err
	}
	return &form, nil
}

// UpdateForm replaces a template's content.
func UpdateForm(ctx context.Context, id primitive.ObjectID, form *models.Form) error {
	if err := validateTemplate(form); err != nil {
		return err
	}
	stampTemplate(form)

	update := bson.M{"$set": bson.M{
		"name":        form.Name,
		"description": form.Description,
		"kind":        form.Kind,
		"isHidden":    form.IsHidden,
		"sections":    form.Sections,
		"signers":     form.Signers,
		"updatedAt":   time.Now(),
	}}

	res, err := formCollection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errors.New("form not found")
	}
	return nil
}

// DeleteForm hides a template instead of removing it; existing requests keep
// referencing it.
func DeleteForm(ctx context.Context, id primitive.ObjectID) error {
	res, err := formCollection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"isHidden": true, "updatedAt": time.Now()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errors.New("form not found")
	}
	return nil
}

// validateTemplate checks structural rules on a template before saving.
func validateTemplate(form *models.Form) error {
	if len(form.Sections) == 0 {
		return errors.New("form needs at least one section")
	}
	for _, section := range form.Sections {
		for _, field := range section.Fields {
			switch field.Type {
			case models.FieldTypeDropdown, models.FieldTypeMultiselect:
				if len(field.Options) == 0 {
					return fmt.Errorf("field %q needs at least one option", field.Name)
				}
			case models.FieldTypeText, models.FieldTypeNumber, models.FieldTypeTextarea,
				models.FieldTypeDate, models.FieldTypeTime, models.FieldTypeSwitch,
				models.FieldTypeLink, models.FieldTypeFile:
			default:
				return fmt.Errorf("field %q has unknown type %q", field.Name, field.Type)
			}
		}
		if section.IsDuplicatable && fieldIndex(section, "General Name") < 0 {
			return fmt.Errorf("duplicatable section %q needs a name field", section.Name)
		}
	}
	return nil
}

func fieldIndex(section models.Section, name string) int {
	for i, f := range section.Fields {
		if f.Name == name {
			return i
		}
	}
	return -1
}

// stampTemplate assigns ids and positional order to sections, fields and
// options.
func stampTemplate(form *models.Form) {
	for si := range form.Sections {
		section := &form.Sections[si]
		if section.ID.IsZero() {
			section.ID = primitive.NewObjectID()
		}
		section.FormID = form.ID
		section.Order = si + 1
		for fi := range section.Fields {
			field := &section.Fields[fi]
			if field.ID.IsZero() {
				field.ID = primitive.NewObjectID()
			}
			field.SectionID = section.ID
			field.Order = fi + 1
			for oi := range field.Options {
				option := &field.Options[oi]
				if option.ID.IsZero() {
					option.ID = primitive.NewObjectID()
				}
				option.FieldID = field.ID
				option.Order = oi + 1
			}
		}
	}
	for i := range form.Signers {
		if form.Signers[i].ID.IsZero() {
			form.Signers[i].ID = primitive.NewObjectID()
		}
		form.Signers[i].FormID = form.ID
		form.Signers[i].Order = i + 1
	}
}
