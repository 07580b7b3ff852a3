//go:build integration

// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/auction-ledger/backend/config"
	"github.com/auction-ledger/backend/internal/domain/entity"
	"github.com/auction-ledger/backend/internal/infra/dependency"
	"github.com/auction-ledger/backend/internal/integration/persistence/model"
	"github.com/auction-ledger/backend/test/integration/mock"
)

const dateLayout = "2006-01-02"

type testContext struct {
	uri      string
	headers  map[string]string
	client   *http.Client
	response *response
	db       *mock.Db
	redis    *redis.Client
	timeMock *mock.Time

	purchases map[string]uuid.UUID
	winners   map[string]uuid.UUID
}

type response struct {
	status int
	body   any
}

var (
	serverInit     sync.Once
	portInit       sync.Once
	testServerPort int
	testInjector   *dependency.Injector
	sharedTime     = mock.NewTime()
)

func initializePort() {
	portInit.Do(func() {
		testServerPort = findAvailablePort()
		_ = os.Setenv("SERVER_PORT", strconv.Itoa(testServerPort))
		_ = os.Setenv("ENV", "test")
		_ = os.Setenv("REPORT_TIMEZONE", "UTC")
		_ = os.Setenv("SNAPSHOT_ENABLED", "false")
	})
}

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
		decimal.MarshalJSONWithoutQuotes = true
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	initializePort()

	test := &testContext{
		uri:      fmt.Sprintf("http://localhost:%d", testServerPort),
		client:   &http.Client{Timeout: 10 * time.Second},
		timeMock: sharedTime,
		redis:    mock.NewRedis(),
		db: mock.NewDb("auction_ledger", map[string]any{
			"purchases":           &model.PurchaseModel{},
			"purchase_payments":   &model.PaymentModel{},
			"purchase_cost_items": &model.CostItemModel{},
			"expenses":            &model.ExpenseModel{},
			"report_snapshots":    &model.ReportSnapshotModel{},
		}),
	}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, test.before()
	})

	// Background steps
	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)
	ctx.Given(`^the current time is "([^"]*)"$`, test.theCurrentTimeIs)

	// Ledger setup steps
	ctx.Given(`^the following purchases exist:$`, test.theFollowingPurchasesExist)
	ctx.Given(`^the following payments exist:$`, test.theFollowingPaymentsExist)
	ctx.Given(`^the following cost items exist:$`, test.theFollowingCostItemsExist)
	ctx.Given(`^the following expenses exist:$`, test.theFollowingExpensesExist)

	// Header steps
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, test.theHeaderContainsTheKeyWith)

	// Action steps
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.When(`^the report snapshot job runs$`, test.theReportSnapshotJobRuns)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response should be JSON$`, test.theResponseShouldBeJSON)
	ctx.Then(`^the response should contain "([^"]*)"$`, test.theResponseShouldContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)
	ctx.Then(`^the response field "([^"]*)" should have (\d+) items$`, test.theResponseFieldShouldHaveItems)

	// Storage assertion steps
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjectsInTheTable)
	ctx.Then(`^the report cache should contain (\d+) entries$`, test.theReportCacheShouldContainEntries)
}

func findAvailablePort() int {
	listener, err := net.Listen("tcp", ":0")
	if err != nil {
		panic(err)
	}
	defer listener.Close()
	return listener.Addr().(*net.TCPAddr).Port
}

func (t *testContext) before() error {
	t.headers = make(map[string]string)
	t.response = nil
	t.purchases = make(map[string]uuid.UUID)
	t.winners = make(map[string]uuid.UUID)
	t.timeMock.SetCurrentTime(time.Now().UTC())

	if err := t.db.ClearDB(); err != nil {
		return err
	}
	return mock.ClearRedis(t.redis)
}

func (t *testContext) startServer() {
	serverInit.Do(func() {
		cfg := config.Load()
		testInjector = dependency.NewInjector(cfg, t.db.DbConn, t.redis, func() bool {
			return t.db != nil && t.db.DbConn != nil
		}, t.timeMock)

		engine := testInjector.Router.Setup("test")
		server := &http.Server{
			Addr:    fmt.Sprintf(":%d", testServerPort),
			Handler: engine,
		}

		go func() {
			_ = server.ListenAndServe()
		}()
	})

	// Wait for server to be ready
	for i := 0; i < 50; i++ {
		resp, err := http.Get(t.uri + "/health")
		if err == nil && resp.StatusCode == http.StatusOK {
			resp.Body.Close()
			return
		}
		if resp != nil {
			resp.Body.Close()
		}
		time.Sleep(100 * time.Millisecond)
	}
}

func (t *testContext) theAPIServerIsRunning() error {
	t.startServer()
	return nil
}

func (t *testContext) theCurrentTimeIs(value string) error {
	now, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return err
	}
	t.timeMock.SetCurrentTime(now)
	return nil
}

// tableRows maps a data table to one map per row keyed by header.
func tableRows(table *godog.Table) ([]map[string]string, error) {
	if len(table.Rows) < 1 {
		return nil, errors.New("table has no header row")
	}
	header := table.Rows[0].Cells
	rows := make([]map[string]string, 0, len(table.Rows)-1)
	for _, row := range table.Rows[1:] {
		values := make(map[string]string, len(header))
		for i, cell := range row.Cells {
			values[header[i].Value] = cell.Value
		}
		rows = append(rows, values)
	}
	return rows, nil
}

// parseDay reads a YYYY-MM-DD cell as noon UTC.
func parseDay(value string) (time.Time, error) {
	day, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, err
	}
	return day.Add(12 * time.Hour), nil
}

func (t *testContext) purchaseID(label string) (uuid.UUID, error) {
	id, ok := t.purchases[label]
	if !ok {
		return uuid.Nil, fmt.Errorf("unknown purchase %q", label)
	}
	return id, nil
}

func (t *testContext) theFollowingPurchasesExist(table *godog.Table) error {
	rows, err := tableRows(table)
	if err != nil {
		return err
	}

	for _, row := range rows {
		ended, err := parseDay(row["auction_end_date"])
		if err != nil {
			return err
		}
		year, err := strconv.Atoi(row["year"])
		if err != nil {
			return err
		}
		total, err := decimal.NewFromString(row["total"])
		if err != nil {
			return err
		}
		paid, err := decimal.NewFromString(row["paid"])
		if err != nil {
			return err
		}

		winnerID, ok := t.winners[row["winner"]]
		if !ok {
			winnerID = uuid.New()
			t.winners[row["winner"]] = winnerID
		}

		purchase := &entity.Purchase{
			ID:             uuid.New(),
			WinnerID:       winnerID,
			WinnerName:     row["winner"],
			WinnerEmail:    strings.ToLower(row["winner"]) + "@example.com",
			VehicleInfo:    entity.VehicleInfo{Year: year, Make: row["make"], Model: row["model"]},
			AuctionEndDate: ended,
			TotalAmount:    total,
			PaidAmount:     paid,
		}
		if err := t.db.DbConn.Create(model.PurchaseFromEntity(purchase)).Error; err != nil {
			return err
		}
		t.purchases[row["purchase"]] = purchase.ID
	}
	return nil
}

func (t *testContext) theFollowingPaymentsExist(table *godog.Table) error {
	rows, err := tableRows(table)
	if err != nil {
		return err
	}

	for _, row := range rows {
		purchaseID, err := t.purchaseID(row["purchase"])
		if err != nil {
			return err
		}
		date, err := parseDay(row["date"])
		if err != nil {
			return err
		}
		amount, err := decimal.NewFromString(row["amount"])
		if err != nil {
			return err
		}

		payment := model.PaymentFromEntity(purchaseID, entity.Payment{
			ID:     uuid.New(),
			Date:   date,
			Amount: amount,
			Method: entity.PaymentMethod(row["method"]),
		})
		if err := t.db.DbConn.Create(&payment).Error; err != nil {
			return err
		}
	}
	return nil
}

func (t *testContext) theFollowingCostItemsExist(table *godog.Table) error {
	rows, err := tableRows(table)
	if err != nil {
		return err
	}

	for _, row := range rows {
		purchaseID, err := t.purchaseID(row["purchase"])
		if err != nil {
			return err
		}
		date, err := parseDay(row["date"])
		if err != nil {
			return err
		}
		amount, err := decimal.NewFromString(row["amount"])
		if err != nil {
			return err
		}

		item := model.CostItemFromEntity(purchaseID, entity.CostItem{
			ID:       uuid.New(),
			Date:     date,
			Amount:   amount,
			Category: entity.CostCategory(row["category"]),
		})
		if err := t.db.DbConn.Create(&item).Error; err != nil {
			return err
		}
	}
	return nil
}

func (t *testContext) theFollowingExpensesExist(table *godog.Table) error {
	rows, err := tableRows(table)
	if err != nil {
		return err
	}

	for _, row := range rows {
		date, err := parseDay(row["date"])
		if err != nil {
			return err
		}
		amount, err := decimal.NewFromString(row["amount"])
		if err != nil {
			return err
		}

		expense := &entity.Expense{
			ID:       uuid.New(),
			Category: entity.ExpenseCategory(row["category"]),
			Amount:   amount,
			Date:     date,
		}
		if err := t.db.DbConn.Create(model.ExpenseFromEntity(expense)).Error; err != nil {
			return err
		}
	}
	return nil
}

func (t *testContext) theHeaderContainsTheKeyWith(key, value string) error {
	t.headers[key] = value
	return nil
}

func (t *testContext) iSendARequestTo(method, path string) error {
	req, err := http.NewRequest(method, t.uri+path, nil)
	if err != nil {
		return err
	}

	for key, value := range t.headers {
		req.Header.Set(key, value)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	t.response = &response{status: resp.StatusCode}

	var responseBody map[string]any
	if err := json.Unmarshal(bodyBytes, &responseBody); err != nil {
		t.response.body = string(bodyBytes)
	} else {
		t.response.body = responseBody
	}
	return nil
}

func (t *testContext) theReportSnapshotJobRuns() error {
	if testInjector == nil || testInjector.SnapshotSummary == nil {
		return errors.New("snapshot use case is not wired")
	}
	_, err := testInjector.SnapshotSummary.Execute(context.Background())
	return err
}

func (t *testContext) theResponseStatusShouldBe(expectedStatus int) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if t.response.status != expectedStatus {
		return fmt.Errorf("expected status %d, got %d (body: %v)", expectedStatus, t.response.status, t.response.body)
	}
	return nil
}

func (t *testContext) theResponseShouldBeJSON() error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if _, ok := t.response.body.(map[string]any); !ok {
		return fmt.Errorf("response is not JSON: %v", t.response.body)
	}
	return nil
}

func (t *testContext) theResponseShouldContain(field string) error {
	body, err := t.jsonBody()
	if err != nil {
		return err
	}
	if _, exists := body[field]; !exists {
		return fmt.Errorf("response does not contain field '%s': %v", field, body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBe(field, expectedValue string) error {
	body, err := t.jsonBody()
	if err != nil {
		return err
	}

	value := getFieldValue(body, field)
	if value == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}

	actualValue := fmt.Sprintf("%v", value)
	if actualValue != expectedValue {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expectedValue, actualValue)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldExist(field string) error {
	body, err := t.jsonBody()
	if err != nil {
		return err
	}
	if getFieldValue(body, field) == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldHaveItems(field string, quantity int) error {
	body, err := t.jsonBody()
	if err != nil {
		return err
	}
	items, ok := getFieldValue(body, field).([]any)
	if !ok {
		return fmt.Errorf("field '%s' is not a list: %v", field, body)
	}
	if len(items) != quantity {
		return fmt.Errorf("field '%s' expected %d items, got %d", field, quantity, len(items))
	}
	return nil
}

func (t *testContext) jsonBody() (map[string]any, error) {
	if t.response == nil {
		return nil, errors.New("no response received")
	}
	body, ok := t.response.body.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("response is not a JSON object: %v", t.response.body)
	}
	return body, nil
}

func (t *testContext) theDbShouldContainObjectsInTheTable(quantity int, table string) error {
	if entity, ok := t.db.GetModel(table); ok {
		entityType := reflect.TypeOf(entity).Elem()
		entitySlice := reflect.MakeSlice(reflect.SliceOf(entityType), 0, 0)
		entitySlicePtr := reflect.New(entitySlice.Type())
		entitySlicePtr.Elem().Set(entitySlice)

		result := t.db.DbConn.Unscoped().Find(entitySlicePtr.Interface())
		if result.Error != nil {
			return result.Error
		}

		count := entitySlicePtr.Elem().Len()
		if count != quantity {
			return fmt.Errorf("expected %d objects in '%s', got %d", quantity, table, count)
		}
		return nil
	}
	return fmt.Errorf("table '%s' not found in models", table)
}

func (t *testContext) theReportCacheShouldContainEntries(quantity int) error {
	count, err := mock.CountKeys(t.redis, "auction-ledger:reports:*")
	if err != nil {
		return err
	}
	if count != quantity {
		return fmt.Errorf("expected %d cached reports, got %d", quantity, count)
	}
	return nil
}

func getFieldValue(object any, dotSeparatedField string) any {
	if object == nil {
		return nil
	}

	var objectMap map[string]any
	switch v := object.(type) {
	case map[string]any:
		objectMap = v
	default:
		objectJSON, _ := json.Marshal(object)
		if err := json.Unmarshal(objectJSON, &objectMap); err != nil {
			return nil
		}
	}

	fields := strings.Split(dotSeparatedField, ".")
	var field any = objectMap

	for _, currentField := range fields {
		if field == nil {
			return nil
		}

		if i, err := strconv.Atoi(currentField); err == nil {
			if arr, ok := field.([]any); ok && i < len(arr) {
				field = arr[i]
			} else {
				return nil
			}
		} else {
			if m, ok := field.(map[string]any); ok {
				field = m[currentField]
			} else {
				return nil
			}
		}
	}

	return field
}
