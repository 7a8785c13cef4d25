package projects

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

var (
	projectCollection *mongo.Collection
	signerCollection  *mongo.Collection
)

func init() {
	if err := DB.ConnectMongoDB(); err != nil {
		log.Fatal("MongoDB connection error:", err)
	}

	projectCollection = DB.ProjectCollection
	signerCollection = DB.SignerCollection
}

// CreateProject inserts a new project site.
func CreateProject(ctx context.Context, project *models.Project) (*models.Project, error) {
	project.ID = primitive.NewObjectID()
	if _, err := projectCollection.InsertOne(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// GetProjects lists the team's projects with pagination and name search.
func GetProjects(ctx context.Context, teamID primitive.ObjectID, params models.PaginationParams) (*models.PaginatedResponse, error) {
	filter := bson.M{"teamId": teamID}
	if params.Search != "" {
		filter["name"] = bson.M{"$regex": params.Search, "$options": "i"}
	}

	total, err := projectCollection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, err
	}

	opts := options.Find().
		SetSkip(params.GetSkip()).
		SetLimit(int64(params.Limit)).
		SetSort(params.GetSortOrder())

	cursor, err := projectCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	projects := []models.Project{}
	if err = cursor.All(ctx, &projects); err != nil {
		return nil, err
	}

	return models.NewPaginatedResponse(projects, total, params), nil
}

// GetProjectByID returns one project.
func GetProjectByID(ctx context.Context, id primitive.ObjectID) (*models.Project, error) {
	var project models.Project
	err := projectCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&project)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.New("project not found")
		}
		return nil, err
	}
	return &project, nil
}

// GetProjectByName returns one project by its display name within the team.
func GetProjectByName(ctx context.Context, teamID primitive.ObjectID, name string) (*models.Project, error) {
	var project models.Project
	err := projectCollection.FindOne(ctx, bson.M{"teamId": teamID, "name": name}).Decode(&project)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.New("project not found: " + name)
		}
		return nil, err
	}
	return &project, nil
}

// UpdateProject replaces a project's editable fields.
func UpdateProject(ctx context.Context, id primitive.ObjectID, project *models.Project) error {
	update := bson.M{"$set": bson.M{
		"name":     project.Name,
		"siteCode": project.SiteCode,
		"initials": project.Initials,
	}}

	res, err := projectCollection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errors.New("project not found")
	}
	return nil
}

// DeleteProject removes a project and its signer assignments.
func DeleteProject(ctx context.Context, id primitive.ObjectID) error {
	if _, err := signerCollection.DeleteMany(ctx, bson.M{"projectId": id}); err != nil {
		return err
	}

	res, err := projectCollection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return errors.New("project not found")
	}
	return nil
}

// AssignSigners replaces the signer assignments of a project for one form.
func AssignSigners(ctx context.Context, projectID, formID primitive.ObjectID, list []models.Signer) error {
	if _, err := signerCollection.DeleteMany(ctx, bson.M{"projectId": projectID, "formId": formID}); err != nil {
		return err
	}

	if len(list) == 0 {
		return nil
	}

	docs := make([]interface{}, len(list))
	for i := range list {
		list[i].ID = primitive.NewObjectID()
		list[i].ProjectID = projectID
		list[i].FormID = formID
		list[i].Order = i + 1
		docs[i] = list[i]
	}
	_, err := signerCollection.InsertMany(ctx, docs)
	return err
}
