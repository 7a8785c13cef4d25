package requests

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	DB "Backend-Procure/src/database"
	"Backend-Procure/src/jobs"
	"Backend-Procure/src/models"
	"Backend-Procure/src/services/drafts"
	"Backend-Procure/src/services/formstate"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	connectOnce sync.Once

	requestCollection *mongo.Collection
	formCollection    *mongo.Collection
)

// connect wires the collections on first use, keeping the pure validation
// helpers importable without a database.
func connect() {
	connectOnce.Do(func() {
		if err := DB.ConnectMongoDB(); err != nil {
			log.Fatal("MongoDB connection error:", err)
		}

		requestCollection = DB.RequestCollection
		formCollection = DB.FormCollection
	})
}

// CreateRequest validates and persists a new request. Line-item sections are
// collapsed through the merge pass first, the signer list is resolved from
// the project and special-approver rules, and the pending signers are
// notified through the job queue.
func CreateRequest(ctx context.Context, request *models.Request) (*models.Request, error) {
	connect()

	form, err := getForm(ctx, request.FormID)
	if err != nil {
		return nil, err
	}
	request.TeamID = form.TeamID
	request.Kind = form.Kind

	if err := validateSections(request.Sections); err != nil {
		return nil, err
	}

	merged, err := formstate.MergeSections(request.Sections, formstate.MergeOptions{
		CompareStartIndex: compareStartIndex(form.Kind),
	})
	if err != nil {
		return nil, err
	}
	request.Sections = merged

	resolved, err := resolveSigners(ctx, form, request.ProjectID, lineItemNames(request.Sections))
	if err != nil {
		return nil, err
	}
	request.Signers = resolved

	if err := validateSigners(request.Signers); err != nil {
		return nil, err
	}

	request.ID = primitive.NewObjectID()
	request.Status = models.RequestStatusPending
	request.CreatedAt = time.Now()
	request.UpdatedAt = request.CreatedAt
	stampSnapshot(request)

	if _, err := requestCollection.InsertOne(ctx, request); err != nil {
		return nil, err
	}

	enqueueSignerNotification(request)
	return request, nil
}

// EditRequest replaces the sections of a pending request. Editing is refused
// once any signer has acted.
func EditRequest(ctx context.Context, id primitive.ObjectID, sections []models.Section) (*models.Request, error) {
	request, err := GetRequestByID(ctx, id)
	if err != nil {
		return nil, err
	}

	editable, err := CheckIfRequestIsEditable(ctx, id)
	if err != nil {
		return nil, err
	}
	if !editable {
		return nil, ErrRequestNotEditable
	}

	if err := validateSections(sections); err != nil {
		return nil, err
	}

	merged, err := formstate.MergeSections(sections, formstate.MergeOptions{
		CompareStartIndex: compareStartIndex(request.Kind),
	})
	if err != nil {
		return nil, err
	}
	request.Sections = merged
	request.UpdatedAt = time.Now()
	stampSnapshot(request)

	update := bson.M{"$set": bson.M{
		"sections":  request.Sections,
		"updatedAt": request.UpdatedAt,
	}}
	if _, err := requestCollection.UpdateOne(ctx, bson.M{"_id": id}, update); err != nil {
		return nil, err
	}

	// the draft is superseded by the saved edit
	if err := drafts.Delete(ctx, id.Hex()); err != nil {
		log.Println("⚠️ Failed to drop draft for request", id.Hex(), ":", err)
	}

	return request, nil
}

// GetRequestByID returns one request.
func GetRequestByID(ctx context.Context, id primitive.ObjectID) (*models.Request, error) {
	connect()

	var request models.Request
	err := requestCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&request)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	return &request, nil
}

// GetRequests lists the team's requests with pagination and status filter.
func GetRequests(ctx context.Context, teamID primitive.ObjectID, status models.RequestStatus, params models.PaginationParams) (*models.PaginatedResponse, error) {
	connect()

	filter := bson.M{"teamId": teamID}
	if status != "" {
		filter["status"] = status
	}

	total, err := requestCollection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, err
	}

	opts := options.Find().
		SetSkip(params.GetSkip()).
		SetLimit(int64(params.Limit)).
		SetSort(params.GetSortOrder())

	cursor, err := requestCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	list := []models.Request{}
	if err = cursor.All(ctx, &list); err != nil {
		return nil, err
	}

	return models.NewPaginatedResponse(list, total, params), nil
}

// CancelRequest marks a pending request canceled.
func CancelRequest(ctx context.Context, id primitive.ObjectID) error {
	connect()

	res, err := requestCollection.UpdateOne(ctx,
		bson.M{"_id": id, "status": models.RequestStatusPending},
		bson.M{"$set": bson.M{"status": models.RequestStatusCanceled, "updatedAt": time.Now()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrRequestNotPending
	}
	return nil
}

// CheckIfRequestIsEditable reports whether no signer has acted yet on a
// pending request.
func CheckIfRequestIsEditable(ctx context.Context, id primitive.ObjectID) (bool, error) {
	request, err := GetRequestByID(ctx, id)
	if err != nil {
		return false, err
	}
	if request.Status != models.RequestStatusPending {
		return false, nil
	}
	for _, s := range request.Signers {
		if s.Status != models.SignerStatusPending {
			return false, nil
		}
	}
	return true, nil
}

// CheckIfRequestIsPending reports whether the request is still pending.
func CheckIfRequestIsPending(ctx context.Context, id primitive.ObjectID) (bool, error) {
	request, err := GetRequestByID(ctx, id)
	if err != nil {
		return false, err
	}
	return request.Status == models.RequestStatusPending, nil
}

// CheckRequisitionQuantity verifies that quantities to be released against a
// requisition do not exceed what it still has available, counting every other
// non-canceled request drawing from the same source.
func CheckRequisitionQuantity(ctx context.Context, sourceID primitive.ObjectID, requested map[string]float64) ([]models.QuantityCheck, error) {
	return checkSourceQuantity(ctx, sourceID, requested)
}

// CheckROItemQuantity is the same check against a release order's items.
func CheckROItemQuantity(ctx context.Context, sourceID primitive.ObjectID, requested map[string]float64) ([]models.QuantityCheck, error) {
	return checkSourceQuantity(ctx, sourceID, requested)
}

func checkSourceQuantity(ctx context.Context, sourceID primitive.ObjectID, requested map[string]float64) ([]models.QuantityCheck, error) {
	source, err := GetRequestByID(ctx, sourceID)
	if err != nil {
		return nil, err
	}
	available, err := quantityByItem(source.Sections)
	if err != nil {
		return nil, err
	}

	// subtract what sibling requests already drew from this source
	cursor, err := requestCollection.Find(ctx, bson.M{
		"sourceRequestId": sourceID,
		"status":          bson.M{"$ne": models.RequestStatusCanceled},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var siblings []models.Request
	if err = cursor.All(ctx, &siblings); err != nil {
		return nil, err
	}
	for _, sibling := range siblings {
		drawn, err := quantityByItem(sibling.Sections)
		if err != nil {
			return nil, err
		}
		for name, qty := range drawn {
			available[name] -= qty
		}
	}

	var violations []models.QuantityCheck
	for name, qty := range requested {
		remaining, ok := available[name]
		if !ok {
			violations = append(violations, models.QuantityCheck{ItemName: name, Requested: qty})
			continue
		}
		if qty > remaining {
			violations = append(violations, models.QuantityCheck{
				ItemName:  name,
				Requested: qty,
				Available: remaining,
			})
		}
	}
	return violations, nil
}

func getForm(ctx context.Context, formID primitive.ObjectID) (*models.Form, error) {
	connect()

	var form models.Form
	err := formCollection.FindOne(ctx, bson.M{"_id": formID}).Decode(&form)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.New("form not found")
		}
		return nil, err
	}
	return &form, nil
}

func enqueueSignerNotification(request *models.Request) {
	if DB.AsynqClient == nil {
		return
	}
	task, err := jobs.NewNotifySignersTask(request.ID.Hex())
	if err != nil {
		log.Println("⚠️ Failed to build signer notification task:", err)
		return
	}
	if _, err := DB.AsynqClient.Enqueue(task); err != nil {
		log.Println("⚠️ Failed to enqueue signer notification:", err)
	}
	jobs.ScheduleSignerReminder(request.ID.Hex())
}
