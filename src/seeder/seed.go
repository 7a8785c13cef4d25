package seeder

import (
	"context"
	"log"

	DB "Backend-Procure/src/database"
	"Backend-Procure/src/models"
	"Backend-Procure/src/services/auth"
	"Backend-Procure/src/services/forms"
	"Backend-Procure/src/services/items"
	"Backend-Procure/src/services/projects"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SeedDemoData loads a development dataset: one team with a processor, the
// reference catalog a requisition cascade needs, a project with an assigned
// signer chain, and a requisition form template. Running it twice is a no-op.
func SeedDemoData(ctx context.Context) error {
	count, err := DB.FormCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return err
	}
	if count > 0 {
		log.Println("⚠️ Demo data already present, skipping seed")
		return nil
	}

	teamID := primitive.NewObjectID()

	member, err := seedProcessor(ctx, teamID)
	if err != nil {
		return err
	}
	if err := seedCatalog(ctx, teamID); err != nil {
		return err
	}
	form, err := seedRequisitionForm(ctx, teamID, member)
	if err != nil {
		return err
	}
	if err := seedProject(ctx, teamID, form, member); err != nil {
		return err
	}

	log.Println("✅ Demo data seeded, team:", teamID.Hex())
	return nil
}

func seedProcessor(ctx context.Context, teamID primitive.ObjectID) (*models.TeamMember, error) {
	user, err := auth.CreateUser(ctx, &models.User{
		Email:     "processor@example.com",
		FirstName: "Pat",
		LastName:  "Processor",
	}, "changeme")
	if err != nil {
		return nil, err
	}

	member := &models.TeamMember{
		ID:     primitive.NewObjectID(),
		UserID: user.ID,
		TeamID: teamID,
		Role:   "processor",
	}
	if _, err := DB.TeamMemberCollection.InsertOne(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

func seedCatalog(ctx context.Context, teamID primitive.ObjectID) error {
	catalog := []models.Item{
		{TeamID: teamID, GeneralName: "Cement", Unit: "bag", GLAccount: "6100", Divisions: []string{"03"}, IsAvailable: true},
		{TeamID: teamID, GeneralName: "Rebar", Unit: "ton", GLAccount: "6105", Divisions: []string{"03", "05"}, IsAvailable: true},
		{TeamID: teamID, GeneralName: "Sand", Unit: "cu.m", GLAccount: "6100", Divisions: []string{"03"}, IsAvailable: true},
	}
	for i := range catalog {
		if _, err := items.CreateItem(ctx, &catalog[i]); err != nil {
			return err
		}
	}

	csiCodes := []interface{}{
		models.CSICode{
			ID:                            primitive.NewObjectID(),
			Code:                          "03 30 00",
			Description:                   "Cast-in-Place Concrete",
			DivisionID:                    "03",
			DivisionDescription:           "Concrete",
			LevelTwoMajorGroupDescription: "Cast-in-Place Concrete",
			LevelTwoMinorGroupDescription: "Structural Concrete",
		},
		models.CSICode{
			ID:                            primitive.NewObjectID(),
			Code:                          "05 12 00",
			Description:                   "Structural Steel Framing",
			DivisionID:                    "05",
			DivisionDescription:           "Metals",
			LevelTwoMajorGroupDescription: "Structural Metal Framing",
			LevelTwoMinorGroupDescription: "Structural Steel",
		},
	}
	_, err := DB.CSICodeCollection.InsertMany(ctx, csiCodes)
	return err
}

func seedRequisitionForm(ctx context.Context, teamID primitive.ObjectID, member *models.TeamMember) (*models.Form, error) {
	itemOptions := []models.Option{{Value: "Cement"}, {Value: "Rebar"}, {Value: "Sand"}}

	form := &models.Form{
		TeamID:      teamID,
		Name:        "Material Requisition",
		Description: "Request materials for a project site",
		Kind:        models.FormKindRequisition,
		Sections: []models.Section{
			{
				Name: "Request Details",
				Fields: []models.Field{
					{Name: "Project Name", Type: models.FieldTypeDropdown, IsRequired: true,
						Options: []models.Option{{Value: "North Plant"}}},
					{Name: "Date Needed", Type: models.FieldTypeDate, IsRequired: true},
					{Name: "Purpose", Type: models.FieldTypeTextarea},
				},
			},
			{
				Name:           "Line Item",
				IsDuplicatable: true,
				Fields: []models.Field{
					{Name: "General Name", Type: models.FieldTypeDropdown, IsRequired: true, Options: itemOptions},
					{Name: "Quantity", Type: models.FieldTypeNumber, IsRequired: true},
					{Name: "Unit", Type: models.FieldTypeText, IsReadOnly: true},
					{Name: "GL Account", Type: models.FieldTypeText, IsReadOnly: true},
					{Name: "CSI Code Description", Type: models.FieldTypeDropdown,
						Options: []models.Option{{Value: "Cast-in-Place Concrete"}}},
					{Name: "CSI Code", Type: models.FieldTypeText, IsReadOnly: true},
					{Name: "Division Description", Type: models.FieldTypeText, IsReadOnly: true},
					{Name: "Level 2 Major Group", Type: models.FieldTypeText, IsReadOnly: true},
					{Name: "Level 2 Minor Group", Type: models.FieldTypeText, IsReadOnly: true},
				},
			},
		},
		Signers: []models.Signer{
			{TeamMemberID: member.ID, Action: models.SignerActionApprove, IsPrimary: true},
		},
	}
	return forms.CreateForm(ctx, form)
}

func seedProject(ctx context.Context, teamID primitive.ObjectID, form *models.Form, member *models.TeamMember) error {
	project := &models.Project{
		TeamID: teamID,
		Name:   "North Plant",
	}
	created, err := projects.CreateProject(ctx, project)
	if err != nil {
		return err
	}

	return projects.AssignSigners(ctx, created.ID, form.ID, []models.Signer{
		{TeamMemberID: member.ID, Action: models.SignerActionApprove, IsPrimary: true},
	})
}
