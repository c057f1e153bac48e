package main

import (
	"log"

	"github.com/printflow/printflow-logistics-api/contract"
	"github.com/printflow/printflow-logistics-api/models"
	"github.com/printflow/printflow-logistics-api/storage"
)

// seedDatabase inserts sample data on an empty database so the dashboard
// has something to show on first run. Shipments and alerts have no API
// creation path; seeding is their sanctioned out-of-band insert.
func seedDatabase(store storage.Store) error {
	existing, err := store.GetOrders()
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	log.Println("Seeding database...")

	acmeDelivery := "2024-05-20"
	_, err = store.CreateOrder(contract.CreateOrderRequest{
		CustomerName:     "Acme Corp",
		ProductType:      "Business Cards",
		Quantity:         1000,
		Status:           "production",
		Priority:         "high",
		ExpectedDelivery: &acmeDelivery,
	})
	if err != nil {
		return err
	}

	globexDelivery := "2024-05-25"
	globex, err := store.CreateOrder(contract.CreateOrderRequest{
		CustomerName:     "Globex Inc",
		ProductType:      "Brochures",
		Quantity:         5000,
		Status:           "shipping",
		Priority:         "normal",
		ExpectedDelivery: &globexDelivery,
	})
	if err != nil {
		return err
	}

	// Advance the auto-created job for the first order onto a press
	jobs, err := store.GetProductionQueue()
	if err != nil {
		return err
	}
	if len(jobs) > 0 {
		stage := "printing"
		progress := 45
		machineID := "PRINTER-01"
		_, err = store.UpdateProductionJob(jobs[0].ID, contract.UpdateProductionJobRequest{
			Stage:     &stage,
			Progress:  &progress,
			MachineID: &machineID,
		})
		if err != nil {
			return err
		}
	}

	_, err = store.CreateShipment(&models.Shipment{
		OrderID:          globex.ID,
		TrackingCode:     "TRK-48291",
		Carrier:          "FedEx",
		Status:           "in_transit",
		EstimatedArrival: &globexDelivery,
	})
	if err != nil {
		return err
	}

	_, err = store.CreateAlert(&models.Alert{
		Type:     "production_delay",
		Message:  "Press PRINTER-02 is behind schedule",
		Severity: "warning",
	})
	if err != nil {
		return err
	}
	_, err = store.CreateAlert(&models.Alert{
		Type:     "system",
		Message:  "Nightly backup completed",
		Severity: "info",
	})
	return err
}
