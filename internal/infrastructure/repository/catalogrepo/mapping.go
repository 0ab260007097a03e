package catalogrepo

import (
	"salesdesk/admin-api/internal/domain/catalog"
	"salesdesk/admin-api/internal/infrastructure/database/entities"
)

func laptopToDomain(row entities.Laptop) *catalog.Product {
	return &catalog.Product{
		ID:        row.ID,
		Category:  catalog.CategoryLaptop,
		Brand:     row.Brand,
		Name:      row.Model,
		Price:     row.Price,
		PriceMax:  row.PriceMax,
		Stock:     row.Stock,
		Status:    catalog.Status(row.Status),
		ImageURL1: row.Image1URL,
		ImageURL2: row.Image2URL,
		Laptop: &catalog.LaptopSpecs{
			Processor:  row.Processor,
			RAM:        row.RAM,
			Storage:    row.Storage,
			ScreenSize: row.ScreenSize,
			Graphics:   row.Graphics,
		},
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

func laptopFromDomain(p *catalog.Product) entities.Laptop {
	row := entities.Laptop{
		Brand:     p.Brand,
		Model:     p.Name,
		Price:     p.Price,
		PriceMax:  p.PriceMax,
		Stock:     p.Stock,
		Status:    string(p.Status),
		Image1URL: p.ImageURL1,
		Image2URL: p.ImageURL2,
	}
	if p.Laptop != nil {
		row.Processor = p.Laptop.Processor
		row.RAM = p.Laptop.RAM
		row.Storage = p.Laptop.Storage
		row.ScreenSize = p.Laptop.ScreenSize
		row.Graphics = p.Laptop.Graphics
	}
	return row
}

func desktopToDomain(row entities.Desktop) *catalog.Product {
	return &catalog.Product{
		ID:        row.ID,
		Category:  catalog.CategoryDesktop,
		Brand:     row.Brand,
		Name:      row.Model,
		Price:     row.Price,
		PriceMax:  row.PriceMax,
		Stock:     row.Stock,
		Status:    catalog.Status(row.Status),
		ImageURL1: row.Image1URL,
		ImageURL2: row.Image2URL,
		Desktop: &catalog.DesktopSpecs{
			Processor:  row.Processor,
			RAM:        row.RAM,
			Storage:    row.Storage,
			Graphics:   row.Graphics,
			FormFactor: row.FormFactor,
		},
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

func desktopFromDomain(p *catalog.Product) entities.Desktop {
	row := entities.Desktop{
		Brand:     p.Brand,
		Model:     p.Name,
		Price:     p.Price,
		PriceMax:  p.PriceMax,
		Stock:     p.Stock,
		Status:    string(p.Status),
		Image1URL: p.ImageURL1,
		Image2URL: p.ImageURL2,
	}
	if p.Desktop != nil {
		row.Processor = p.Desktop.Processor
		row.RAM = p.Desktop.RAM
		row.Storage = p.Desktop.Storage
		row.Graphics = p.Desktop.Graphics
		row.FormFactor = p.Desktop.FormFactor
	}
	return row
}

func accessoryToDomain(row entities.Accessory) *catalog.Product {
	return &catalog.Product{
		ID:        row.ID,
		Category:  catalog.CategoryAccessory,
		Brand:     row.Brand,
		Name:      row.Name,
		Price:     row.Price,
		PriceMax:  row.PriceMax,
		Stock:     row.Stock,
		Status:    catalog.Status(row.Status),
		ImageURL1: row.Image1URL,
		ImageURL2: row.Image2URL,
		Accessory: &catalog.AccessorySpecs{
			Kind:          row.Kind,
			Compatibility: row.Compatibility,
		},
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

func accessoryFromDomain(p *catalog.Product) entities.Accessory {
	row := entities.Accessory{
		Name:      p.Name,
		Brand:     p.Brand,
		Price:     p.Price,
		PriceMax:  p.PriceMax,
		Stock:     p.Stock,
		Status:    string(p.Status),
		Image1URL: p.ImageURL1,
		Image2URL: p.ImageURL2,
	}
	if p.Accessory != nil {
		row.Kind = p.Accessory.Kind
		row.Compatibility = p.Accessory.Compatibility
	}
	return row
}
