package cli

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/ukydev/fleet-control/internal/models"
)

var (
	seedModels      = []string{"Gol", "Uno", "Onix", "HB20", "Strada", "Saveiro", "Fiorino", "Kwid"}
	seedCities      = []string{"Campinas", "Sumaré", "Hortolândia", "Americana", "Paulínia"}
	seedTechnicians = []string{"Ana", "Bruno", "Carla", "Diego", "Elisa"}
	plateLetters    = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// Seeder creates demo data through the API.
type Seeder struct {
	client *Client
	rng    *rand.Rand
	now    time.Time
}

// NewSeeder creates a seeder. The same seed always produces the same data.
func NewSeeder(client *Client, seed int64, now time.Time) *Seeder {
	return &Seeder{client: client, rng: rand.New(rand.NewSource(seed)), now: now}
}

// SeedResult counts what was created.
type SeedResult struct {
	Vehicles          int
	FuelEntries       int
	Cities            int
	TechnicianEntries int
}

// Run creates vehicles with months of refueling history, plus cities and
// technician entries for the same period.
func (s *Seeder) Run(ctx context.Context, vehicles, months int) (SeedResult, error) {
	var res SeedResult
	start := models.DateOf(s.now).YearMonth().FirstDay().Time().AddDate(0, -(months - 1), 0)

	for i := 0; i < vehicles; i++ {
		v := s.randomVehicle()
		var created models.Vehicle
		if err := s.client.PostJSON(ctx, "/vehicles", v, &created); err != nil {
			return res, fmt.Errorf("failed to create vehicle: %w", err)
		}
		res.Vehicles++

		for _, entry := range s.FuelHistory(created.ID.Hex(), start, s.now) {
			if err := s.client.PostJSON(ctx, "/fuel-entries", entry, nil); err != nil {
				return res, fmt.Errorf("failed to create fuel entry: %w", err)
			}
			res.FuelEntries++
		}
		log.WithFields(log.Fields{
			"vehicle_id": created.ID.Hex(),
			"model":      created.Model,
			"plate":      created.LicensePlate,
		}).Info("Seeded vehicle")
	}

	cityIDs := make([]string, 0, len(seedCities))
	for _, name := range seedCities {
		var city models.City
		if err := s.client.PostJSON(ctx, "/cities", models.City{Name: name}, &city); err != nil {
			return res, fmt.Errorf("failed to create city: %w", err)
		}
		cityIDs = append(cityIDs, city.ID.Hex())
		res.Cities++
	}

	for _, entry := range s.TechnicianHistory(cityIDs, start, s.now) {
		if err := s.client.PostJSON(ctx, "/technician-entries", entry, nil); err != nil {
			return res, fmt.Errorf("failed to create technician entry: %w", err)
		}
		res.TechnicianEntries++
	}
	return res, nil
}

func (s *Seeder) randomVehicle() models.Vehicle {
	plate := make([]byte, 0, 7)
	for i := 0; i < 3; i++ {
		plate = append(plate, plateLetters[s.rng.Intn(len(plateLetters))])
	}
	plate = append(plate, byte('0'+s.rng.Intn(10)), plateLetters[s.rng.Intn(len(plateLetters))])
	plate = append(plate, byte('0'+s.rng.Intn(10)), byte('0'+s.rng.Intn(10)))

	due := models.DateOf(s.now.AddDate(0, 1+s.rng.Intn(11), 0))
	return models.Vehicle{
		Model:        seedModels[s.rng.Intn(len(seedModels))],
		LicensePlate: string(plate),
		Year:         2015 + s.rng.Intn(s.now.Year()-2014),
		IPVADueDate:  &due,
	}
}

// FuelHistory refuels roughly weekly from start to end. Each fill covers the
// 250 to 500 km driven until the next one.
func (s *Seeder) FuelHistory(vehicleID string, start, end time.Time) []models.FuelEntry {
	kmPerLiter := 9 + s.rng.Float64()*5
	price := 5.4 + s.rng.Float64()*0.8
	odometer := 20000 + s.rng.Intn(60000)

	var entries []models.FuelEntry
	for day := start; !day.After(end); day = day.AddDate(0, 0, 5+s.rng.Intn(5)) {
		driven := 250 + s.rng.Intn(251)
		liters := float64(driven) / (kmPerLiter * (0.9 + s.rng.Float64()*0.2))
		entries = append(entries, models.FuelEntry{
			VehicleID:  vehicleID,
			Date:       models.DateOf(day),
			OdometerKm: odometer,
			Liters:     round2(liters),
			TotalCost:  round2(liters * price),
		})
		odometer += driven
	}
	return entries
}

// TechnicianHistory creates a few field entries per month. Roughly one in
// ten has no city, which exercises the unmapped bucket.
func (s *Seeder) TechnicianHistory(cityIDs []string, start, end time.Time) []models.TechnicianEntry {
	var entries []models.TechnicianEntry
	for month := start; !month.After(end); month = month.AddDate(0, 1, 0) {
		for i := 0; i < 4+s.rng.Intn(4); i++ {
			day := month.AddDate(0, 0, s.rng.Intn(28))
			if day.After(end) {
				continue
			}
			e := models.TechnicianEntry{
				TechnicianName:       seedTechnicians[s.rng.Intn(len(seedTechnicians))],
				Date:                 models.DateOf(day),
				FoodExpense:          round2(30 + s.rng.Float64()*50),
				FuelExpense:          round2(40 + s.rng.Float64()*120),
				AccommodationExpense: round2(float64(s.rng.Intn(2)) * (120 + s.rng.Float64()*80)),
				ServiceOrders:        1 + s.rng.Intn(6),
			}
			if len(cityIDs) > 0 && s.rng.Intn(10) > 0 {
				id := cityIDs[s.rng.Intn(len(cityIDs))]
				e.CityID = &id
			}
			entries = append(entries, e)
		}
	}
	return entries
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
