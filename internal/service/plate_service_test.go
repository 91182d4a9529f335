package service

import (
	"context"
	"testing"

	"github.com/printlab/printerm/internal/entity"
	"github.com/printlab/printerm/internal/pricing"
	"github.com/printlab/printerm/internal/repository"
	"github.com/printlab/printerm/internal/testutil"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupServiceTest(t *testing.T) (*gorm.DB, *Services) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	services := NewServices(repository.NewRepositories(db), db, zap.NewNop())
	return db, services
}

func materialQuantity(t *testing.T, db *gorm.DB, id uint) float64 {
	t.Helper()
	var material entity.Material
	if err := db.First(&material, id).Error; err != nil {
		t.Fatalf("Failed to load material: %v", err)
	}
	return material.QuantityRemaining
}

func TestPlateCreateDeductsAndDeleteRestores(t *testing.T) {
	db, services := setupServiceTest(t)
	ctx := context.Background()

	user := testutil.SeedUser(t, db, "alice")
	material := testutil.SeedMaterial(t, db, "PLA", 0.05, 1000)
	project := testutil.SeedProject(t, db, user.ID, "RC Car")

	price := 12.50
	plate, err := services.Plate.Create(ctx, &CreatePlateRequest{
		ProjectID:  project.ID,
		MaterialID: material.ID,
		GramsUsed:  120,
		PrintTime:  2,
		PriceSold:  &price,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if got := materialQuantity(t, db, material.ID); got != 880 {
		t.Errorf("Expected 880g remaining after create, got %v", got)
	}

	if err := services.Plate.Delete(ctx, plate.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if got := materialQuantity(t, db, material.ID); got != 1000 {
		t.Errorf("Expected 1000g remaining after delete, got %v", got)
	}
}

func TestPlateUpdateRebalancesSameMaterial(t *testing.T) {
	db, services := setupServiceTest(t)
	ctx := context.Background()

	user := testutil.SeedUser(t, db, "alice")
	material := testutil.SeedMaterial(t, db, "PLA", 0.05, 1000)
	project := testutil.SeedProject(t, db, user.ID, "RC Car")

	price := 10.0
	plate, err := services.Plate.Create(ctx, &CreatePlateRequest{
		ProjectID:  project.ID,
		MaterialID: material.ID,
		GramsUsed:  120,
		PriceSold:  &price,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	_, err = services.Plate.Update(ctx, plate.ID, &UpdatePlateRequest{
		ProjectID:  project.ID,
		MaterialID: material.ID,
		GramsUsed:  150,
		PriceSold:  &price,
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if got := materialQuantity(t, db, material.ID); got != 850 {
		t.Errorf("Expected 850g remaining after edit to 150g, got %v", got)
	}
}

func TestPlateUpdateSwitchesMaterial(t *testing.T) {
	db, services := setupServiceTest(t)
	ctx := context.Background()

	user := testutil.SeedUser(t, db, "alice")
	pla := testutil.SeedMaterial(t, db, "PLA", 0.05, 1000)
	petg := testutil.SeedMaterial(t, db, "PETG", 0.06, 800)
	project := testutil.SeedProject(t, db, user.ID, "RC Car")

	price := 10.0
	plate, err := services.Plate.Create(ctx, &CreatePlateRequest{
		ProjectID:  project.ID,
		MaterialID: pla.ID,
		GramsUsed:  100,
		PriceSold:  &price,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	_, err = services.Plate.Update(ctx, plate.ID, &UpdatePlateRequest{
		ProjectID:  project.ID,
		MaterialID: petg.ID,
		GramsUsed:  80,
		PriceSold:  &price,
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if got := materialQuantity(t, db, pla.ID); got != 1000 {
		t.Errorf("Expected old material restored to 1000g, got %v", got)
	}
	if got := materialQuantity(t, db, petg.ID); got != 720 {
		t.Errorf("Expected new material at 720g, got %v", got)
	}
}

func TestPlateCreateComputesPriceFromProjectPricing(t *testing.T) {
	db, services := setupServiceTest(t)
	ctx := context.Background()

	user := testutil.SeedUser(t, db, "alice")
	material := testutil.SeedMaterial(t, db, "PLA", 0.05, 1000)
	project := testutil.SeedProject(t, db, user.ID, "RC Car")
	project.PricingMethod = pricing.MethodMarkup
	if err := db.Save(project).Error; err != nil {
		t.Fatalf("Failed to update project: %v", err)
	}

	plate, err := services.Plate.Create(ctx, &CreatePlateRequest{
		ProjectID:  project.ID,
		MaterialID: material.ID,
		GramsUsed:  120,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// 120g * 0.05 = 6.00 material cost, 50% markup -> 9.00
	if plate.PriceSold != 9.00 {
		t.Errorf("Expected computed price 9.00, got %v", plate.PriceSold)
	}
}

func TestPlateCreateKeepsManualPrice(t *testing.T) {
	db, services := setupServiceTest(t)
	ctx := context.Background()

	user := testutil.SeedUser(t, db, "alice")
	material := testutil.SeedMaterial(t, db, "PLA", 0.05, 1000)
	project := testutil.SeedProject(t, db, user.ID, "RC Car")

	manual := 0.0
	plate, err := services.Plate.Create(ctx, &CreatePlateRequest{
		ProjectID:  project.ID,
		MaterialID: material.ID,
		GramsUsed:  120,
		PriceSold:  &manual,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if plate.PriceSold != 0 {
		t.Errorf("Expected explicit zero price kept, got %v", plate.PriceSold)
	}
}

func TestBatchCreateMatchesQuote(t *testing.T) {
	db, services := setupServiceTest(t)
	ctx := context.Background()

	user := testutil.SeedUser(t, db, "alice")
	material := testutil.SeedMaterial(t, db, "PLA", 0.05, 1000)
	project := testutil.SeedProject(t, db, user.ID, "RC Car")
	project.PricingMethod = pricing.MethodMarkup
	if err := db.Save(project).Error; err != nil {
		t.Fatalf("Failed to update project: %v", err)
	}

	quote, err := services.Plate.Quote(ctx, &QuoteRequest{
		ProjectID:  project.ID,
		MaterialID: material.ID,
		GramsUsed:  120,
		PrintTime:  2,
	})
	if err != nil {
		t.Fatalf("Quote failed: %v", err)
	}

	plates, err := services.Plate.BatchCreate(ctx, &BatchCreateRequest{
		ProjectID:  project.ID,
		MaterialID: material.ID,
		Entries: []BatchEntry{
			{GramsUsed: 120, PrintTime: 2},
			{GramsUsed: 120, PrintTime: 2},
		},
	})
	if err != nil {
		t.Fatalf("BatchCreate failed: %v", err)
	}
	if len(plates) != 2 {
		t.Fatalf("Expected 2 plates, got %d", len(plates))
	}
	for _, plate := range plates {
		if plate.PriceSold != quote.SellingPrice {
			t.Errorf("Expected batch price %v to match quote, got %v", quote.SellingPrice, plate.PriceSold)
		}
	}

	if got := materialQuantity(t, db, material.ID); got != 760 {
		t.Errorf("Expected 760g remaining after batch, got %v", got)
	}
}

func TestProjectDeleteRestoresMaterials(t *testing.T) {
	db, services := setupServiceTest(t)
	ctx := context.Background()

	user := testutil.SeedUser(t, db, "alice")
	material := testutil.SeedMaterial(t, db, "PLA", 0.05, 1000)
	project := testutil.SeedProject(t, db, user.ID, "RC Car")

	price := 5.0
	for i := 0; i < 2; i++ {
		_, err := services.Plate.Create(ctx, &CreatePlateRequest{
			ProjectID:  project.ID,
			MaterialID: material.ID,
			GramsUsed:  100,
			PriceSold:  &price,
		})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}
	if got := materialQuantity(t, db, material.ID); got != 800 {
		t.Fatalf("Expected 800g before delete, got %v", got)
	}

	if err := services.Project.Delete(ctx, project.ID); err != nil {
		t.Fatalf("Project delete failed: %v", err)
	}

	if got := materialQuantity(t, db, material.ID); got != 1000 {
		t.Errorf("Expected 1000g restored after project delete, got %v", got)
	}

	var plateCount int64
	db.Model(&entity.Plate{}).Count(&plateCount)
	if plateCount != 0 {
		t.Errorf("Expected plates removed with project, found %d", plateCount)
	}
}

func TestUserDeleteCascades(t *testing.T) {
	db, services := setupServiceTest(t)
	ctx := context.Background()

	user := testutil.SeedUser(t, db, "alice")
	material := testutil.SeedMaterial(t, db, "PLA", 0.05, 1000)
	project := testutil.SeedProject(t, db, user.ID, "RC Car")
	testutil.SeedPlate(t, db, project.ID, material.ID, 150, 1, 10)

	if err := services.User.Delete(ctx, user.ID); err != nil {
		t.Fatalf("User delete failed: %v", err)
	}

	if got := materialQuantity(t, db, material.ID); got != 1150 {
		t.Errorf("Expected 1150g after cascade restore, got %v", got)
	}
	var projects int64
	db.Model(&entity.Project{}).Count(&projects)
	if projects != 0 {
		t.Errorf("Expected projects removed with user, found %d", projects)
	}
}
