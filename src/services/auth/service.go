package auth

import (
	"context"
	"errors"
	"log"
	"time"

	DB "Backend-Procure/src/database"
	"Backend-Procure/src/models"
	"Backend-Procure/src/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

var (
	userCollection       *mongo.Collection
	teamMemberCollection *mongo.Collection
)

func init() {
	if err := DB.ConnectMongoDB(); err != nil {
		log.Fatal("MongoDB connection error:", err)
	}

	userCollection = DB.UserCollection
	teamMemberCollection = DB.TeamMemberCollection
}

// Login verifies credentials and issues a JWT carrying the user's team
// membership.
func Login(ctx context.Context, email, password string) (*models.LoginResponse, error) {
	var user models.User
	err := userCollection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.New("invalid email or password")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, errors.New("invalid email or password")
	}

	var member models.TeamMember
	teamID, role := "", "member"
	if err := teamMemberCollection.FindOne(ctx, bson.M{"userId": user.ID}).Decode(&member); err == nil {
		teamID = member.TeamID.Hex()
		role = member.Role
	}

	token, err := utils.GenerateJWT(user.ID.Hex(), teamID, role)
	if err != nil {
		return nil, err
	}

	return &models.LoginResponse{Token: token, User: user}, nil
}

// CreateUser registers a user with a hashed password.
func CreateUser(ctx context.Context, user *models.User, password string) (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user.ID = primitive.NewObjectID()
	user.Password = string(hashed)
	user.CreatedAt = time.Now()

	if _, err := userCollection.InsertOne(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetProcessors lists the team members holding the processor role, with the
// user joined in for the admin list view.
func GetProcessors(ctx context.Context, teamID primitive.ObjectID, params models.PaginationParams) (*models.PaginatedResponse, error) {
	filter := bson.M{"teamId": teamID, "role": "processor"}

	total, err := teamMemberCollection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, err
	}

	opts := options.Find().
		SetSkip(params.GetSkip()).
		SetLimit(int64(params.Limit)).
		SetSort(params.GetSortOrder())

	cursor, err := teamMemberCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	members := []models.TeamMember{}
	if err = cursor.All(ctx, &members); err != nil {
		return nil, err
	}

	for i := range members {
		var user models.User
		if err := userCollection.FindOne(ctx, bson.M{"_id": members[i].UserID}).Decode(&user); err == nil {
			members[i].User = &user
		}
	}

	return models.NewPaginatedResponse(members, total, params), nil
}
