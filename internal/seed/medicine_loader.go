package seed

import (
	"encoding/csv"
	"errors"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"medbill/m/domain"
)

var (
	errShortRow = errors.New("expected 9 columns")
	errNoName   = errors.New("name is empty")
)

// MedicineCreator is the part of the store the seeders need.
type MedicineCreator interface {
	CreateMedicine(m domain.Medicine) (domain.Medicine, error)
}

// SampleMedicines are loaded into every fresh store.
func SampleMedicines() []domain.Medicine {
	return []domain.Medicine{
		{
			Name:         "Paracetamol 500mg",
			Description:  "Pain reliever and fever reducer",
			Category:     "Analgesic",
			Price:        0.50,
			Stock:        150,
			MinStock:     20,
			Manufacturer: "PharmaCorp",
			ExpiryDate:   time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
			BatchNumber:  "PC001",
			IsActive:     true,
		},
		{
			Name:         "Amoxicillin 250mg",
			Description:  "Antibiotic for bacterial infections",
			Category:     "Antibiotic",
			Price:        2.50,
			Stock:        5,
			MinStock:     10,
			Manufacturer: "MedLabs",
			ExpiryDate:   time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC),
			BatchNumber:  "ML002",
			IsActive:     true,
		},
		{
			Name:         "Ibuprofen 400mg",
			Description:  "Anti-inflammatory pain reliever",
			Category:     "NSAID",
			Price:        1.25,
			Stock:        80,
			MinStock:     15,
			Manufacturer: "HealthCorp",
			ExpiryDate:   time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC),
			BatchNumber:  "HC003",
			IsActive:     true,
		},
	}
}

// LoadSamples inserts SampleMedicines and returns how many were stored.
func LoadSamples(store MedicineCreator) int {
	n := 0
	for _, m := range SampleMedicines() {
		if _, err := store.CreateMedicine(m); err != nil {
			log.Printf("unable to seed medicine %s: %v", m.Name, err)
			continue
		}
		n++
	}
	return n
}

// LoadMedicines reads a catalog CSV with the header
// name,description,category,price,stock,minStock,manufacturer,expiryDate,batchNumber
// and adds every well-formed row as an active medicine. Bad rows are logged
// and skipped.
func LoadMedicines(store MedicineCreator, csvPath string) int {
	file, err := os.Open(csvPath)
	if err != nil {
		log.Printf("unable to load medicine catalog %s: %v", csvPath, err)
		return 0
	}
	defer file.Close()
	return loadMedicines(store, file)
}

func loadMedicines(store MedicineCreator, r io.Reader) int {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	// Skip header
	if _, err := reader.Read(); err != nil {
		log.Printf("unable to read medicine header: %v", err)
		return 0
	}

	rows := 0
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			log.Printf("unable to read medicine row %d: %v", line, err)
			continue
		}
		m, err := parseMedicine(record)
		if err != nil {
			log.Printf("skipping medicine row %d: %v", line, err)
			continue
		}
		if _, err := store.CreateMedicine(m); err != nil {
			log.Printf("unable to insert medicine %s: %v", m.Name, err)
			continue
		}
		rows++
	}

	log.Printf("seeded medicine catalog with %d rows", rows)
	return rows
}

func parseMedicine(record []string) (domain.Medicine, error) {
	if len(record) < 9 {
		return domain.Medicine{}, errShortRow
	}
	for i := range record {
		record[i] = strings.TrimSpace(record[i])
	}
	if record[0] == "" {
		return domain.Medicine{}, errNoName
	}
	price, err := strconv.ParseFloat(record[3], 64)
	if err != nil {
		return domain.Medicine{}, err
	}
	stock, err := strconv.ParseInt(record[4], 10, 64)
	if err != nil {
		return domain.Medicine{}, err
	}
	minStock := domain.DefaultMinStock
	if record[5] != "" {
		if minStock, err = strconv.ParseInt(record[5], 10, 64); err != nil {
			return domain.Medicine{}, err
		}
	}
	expiry, err := time.Parse("2006-01-02", record[7])
	if err != nil {
		return domain.Medicine{}, err
	}
	return domain.Medicine{
		Name:         record[0],
		Description:  record[1],
		Category:     record[2],
		Price:        price,
		Stock:        stock,
		MinStock:     minStock,
		Manufacturer: record[6],
		ExpiryDate:   expiry,
		BatchNumber:  record[8],
		IsActive:     true,
	}, nil
}
