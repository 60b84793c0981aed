package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medbill/m/domain"
)

func paidBill(t *testing.T, s *Store, in BillInput) domain.Bill {
	t.Helper()
	b, err := s.CreateBill(in)
	require.NoError(t, err)
	b, err = s.UpdateBill(b.ID, domain.BillPatch{Status: ptr(domain.BillPaid)})
	require.NoError(t, err)
	return b
}

func TestDashboardSummary(t *testing.T) {
	s, clock := newTestStore(t)
	para, _, ibu := sampleMedicines(t, s)
	gone := mustMedicine(t, s, "Discontinued", 1, 0, 5)
	_, err := s.DeactivateMedicine(gone.ID)
	require.NoError(t, err)

	clock.Set(time.Date(2024, 2, 20, 12, 0, 0, 0, time.UTC))
	paidBill(t, s, BillInput{PatientName: "feb", Items: []BillItemInput{{para.ID, 10}}})

	clock.Set(time.Date(2024, 3, 2, 12, 0, 0, 0, time.UTC))
	paidBill(t, s, BillInput{PatientName: "early march", Items: []BillItemInput{{ibu.ID, 4}}})

	clock.Set(time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC))
	paidBill(t, s, BillInput{PatientName: "today", Items: []BillItemInput{{para.ID, 2}}})
	_, err = s.CreateBill(BillInput{PatientName: "today pending", Items: []BillItemInput{{para.ID, 1}}})
	require.NoError(t, err)

	clock.Set(time.Date(2024, 3, 15, 18, 0, 0, 0, time.UTC))
	got := s.DashboardSummary()

	assert.Equal(t, DashboardSummary{
		TotalMedicines:    3,
		LowStockMedicines: 1,
		TodaysSales:       SalesTotals{TotalSales: 1.1, TotalBills: 1},
		MonthlySales:      SalesTotals{TotalSales: 6.6, TotalBills: 2},
	}, got)
}

func TestDashboardLowStockBoundary(t *testing.T) {
	s, _ := newTestStore(t)
	mustMedicine(t, s, "at threshold", 1, 10, 10)
	mustMedicine(t, s, "above threshold", 1, 11, 10)
	inactive := mustMedicine(t, s, "inactive empty", 1, 0, 10)
	_, err := s.DeactivateMedicine(inactive.ID)
	require.NoError(t, err)

	got := s.DashboardSummary()
	assert.Equal(t, 2, got.TotalMedicines)
	assert.Equal(t, 1, got.LowStockMedicines)
}

func TestDashboardUsesStoreLocation(t *testing.T) {
	zone := time.FixedZone("UTC+5", 5*60*60)
	clock := &testClock{}
	s := New(WithClock(clock.Now), WithLocation(zone))
	m := mustMedicine(t, s, "Para", 1, 100, 0)

	// 20:00 UTC on the 14th is already the 15th in UTC+5.
	clock.Set(time.Date(2024, 3, 14, 20, 0, 0, 0, time.UTC))
	paidBill(t, s, BillInput{PatientName: "late", Items: []BillItemInput{{m.ID, 1}}})

	clock.Set(time.Date(2024, 3, 15, 6, 0, 0, 0, time.UTC))
	got := s.DashboardSummary()
	assert.Equal(t, 1, got.TodaysSales.TotalBills)
}

func TestRecentBills(t *testing.T) {
	s, _ := newTestStore(t)
	para, _, _ := sampleMedicines(t, s)
	ada, err := s.CreateUser(domain.User{Name: "Ada", Email: "ada@example.com", Password: "x"})
	require.NoError(t, err)

	first, err := s.CreateBill(BillInput{PatientName: "1", Items: []BillItemInput{{para.ID, 1}}, CreatedBy: ada.ID})
	require.NoError(t, err)
	second, err := s.CreateBill(BillInput{PatientName: "2", Items: []BillItemInput{{para.ID, 1}}, CreatedBy: "ghost"})
	require.NoError(t, err)
	third, err := s.CreateBill(BillInput{PatientName: "3", Items: []BillItemInput{{para.ID, 1}}, CreatedBy: ada.ID})
	require.NoError(t, err)

	got := s.RecentBills(2)
	require.Len(t, got, 2)
	assert.Equal(t, third.ID, got[0].ID)
	assert.Equal(t, Creator{ID: ada.ID, Name: "Ada", Email: "ada@example.com"}, got[0].CreatedBy)
	assert.Equal(t, second.ID, got[1].ID)
	assert.Equal(t, UnknownCreatorName, got[1].CreatedBy.Name)
	assert.Equal(t, "ghost", got[1].Bill.CreatedBy)

	all := s.RecentBills(10)
	require.Len(t, all, 3)
	assert.Equal(t, first.ID, all[2].ID)
}

func TestTopSellingMedicines(t *testing.T) {
	s, _ := newTestStore(t)
	para, amox, ibu := sampleMedicines(t, s)

	paidBill(t, s, BillInput{PatientName: "a", Items: []BillItemInput{{para.ID, 5}}})
	paidBill(t, s, BillInput{PatientName: "b", Items: []BillItemInput{{ibu.ID, 3}}})

	top := s.TopSellingMedicines(1)
	require.Len(t, top, 1)
	assert.Equal(t, MedicineSales{
		MedicineID:    para.ID,
		MedicineName:  "Paracetamol 500mg",
		TotalQuantity: 5,
		TotalRevenue:  2.5,
	}, top[0])

	// unpaid bills are ignored; ties keep first-seen order
	_, err := s.CreateBill(BillInput{PatientName: "c", Items: []BillItemInput{{amox.ID, 1}}})
	require.NoError(t, err)
	paidBill(t, s, BillInput{PatientName: "d", Items: []BillItemInput{{amox.ID, 3}, {para.ID, 1}}})

	top = s.TopSellingMedicines(5)
	require.Len(t, top, 3)
	assert.Equal(t, para.ID, top[0].MedicineID)
	assert.Equal(t, int64(6), top[0].TotalQuantity)
	assert.Equal(t, 3.0, top[0].TotalRevenue)
	assert.Equal(t, ibu.ID, top[1].MedicineID)
	assert.Equal(t, int64(3), top[1].TotalQuantity)
	assert.Equal(t, amox.ID, top[2].MedicineID)
	assert.Equal(t, int64(3), top[2].TotalQuantity)
	assert.Equal(t, 7.5, top[2].TotalRevenue)
}
