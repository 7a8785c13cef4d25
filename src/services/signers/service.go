package signers

import (
	"context"
	"log"
	"sync"

	DB "Backend-Procure/src/database"
	"Backend-Procure/src/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	connectOnce sync.Once

	signerCollection          *mongo.Collection
	specialApproverCollection *mongo.Collection
	teamMemberCollection      *mongo.Collection
	userCollection            *mongo.Collection
)

// connect wires the collections on first query. The resolution helpers in
// resolve.go never touch the database, so importing this package does not
// require one.
func connect() {
	connectOnce.Do(func() {
		if err := DB.ConnectMongoDB(); err != nil {
			log.Fatal("MongoDB connection error:", err)
		}

		signerCollection = DB.SignerCollection
		specialApproverCollection = DB.SpecialApproverCollection
		teamMemberCollection = DB.TeamMemberCollection
		userCollection = DB.UserCollection
	})
}

// GetProjectSignerWithTeamMember returns the signers assigned to one project
// for the given form, with team member and user joined in.
func GetProjectSignerWithTeamMember(ctx context.Context, projectID, formID primitive.ObjectID) ([]models.Signer, error) {
	connect()

	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})
	cursor, err := signerCollection.Find(ctx, bson.M{"projectId": projectID, "formId": formID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var list []models.Signer
	if err = cursor.All(ctx, &list); err != nil {
		return nil, err
	}

	return attachTeamMembers(ctx, list)
}

// GetMultipleProjectSignerWithTeamMember returns the signers for every given
// project site at once, used by sourced-item requests that span sites.
func GetMultipleProjectSignerWithTeamMember(ctx context.Context, projectIDs []primitive.ObjectID, formID primitive.ObjectID) ([]models.Signer, error) {
	if len(projectIDs) == 0 {
		return nil, nil
	}
	connect()

	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})
	cursor, err := signerCollection.Find(ctx, bson.M{
		"projectId": bson.M{"$in": projectIDs},
		"formId":    formID,
	}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var list []models.Signer
	if err = cursor.All(ctx, &list); err != nil {
		return nil, err
	}

	return attachTeamMembers(ctx, list)
}

// GetSpecialApprovers returns the team's special-approver rules.
func GetSpecialApprovers(ctx context.Context, teamID primitive.ObjectID) ([]models.SpecialApprover, error) {
	connect()

	cursor, err := specialApproverCollection.Find(ctx, bson.M{"teamId": teamID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rules []models.SpecialApprover
	if err = cursor.All(ctx, &rules); err != nil {
		return nil, err
	}
	return rules, nil
}

func attachTeamMembers(ctx context.Context, list []models.Signer) ([]models.Signer, error) {
	for i := range list {
		var member models.TeamMember
		err := teamMemberCollection.FindOne(ctx, bson.M{"_id": list[i].TeamMemberID}).Decode(&member)
		if err != nil {
			if err == mongo.ErrNoDocuments {
				continue
			}
			return nil, err
		}

		var user models.User
		if err := userCollection.FindOne(ctx, bson.M{"_id": member.UserID}).Decode(&user); err == nil {
			member.User = &user
		}
		list[i].TeamMember = &member
	}
	return list, nil
}
