// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Tillhouse Contributors

package permission

// catalog is the fixed, tenant-neutral list of every permission the
// system understands. Identifiers mix dotted and snake_case styles
// because both exist in stored employee records; renaming one would
// orphan every grant already persisted under it.
var catalog = []Permission{
	// Point of sale
	{ID: "pos.access", Name: "Point of Sale", Description: "Open the register and process sales", Category: CategoryPointOfSale, Level: LevelRead},
	{ID: "pos.discount", Name: "Apply Discounts", Description: "Apply manual discounts at checkout", Category: CategoryPointOfSale, Level: LevelWrite},
	{ID: "pos.refund", Name: "Process Refunds", Description: "Refund completed sales", Category: CategoryPointOfSale, Level: LevelWrite},
	{ID: "pos.void", Name: "Void Sales", Description: "Void or cancel a sale in progress", Category: CategoryPointOfSale, Level: LevelWrite},

	// Inventory
	{ID: "inventory.view", Name: "View Inventory", Description: "Browse stock levels and product details", Category: CategoryInventory, Level: LevelRead},
	{ID: "inventory.edit", Name: "Edit Inventory", Description: "Adjust stock levels and product details", Category: CategoryInventory, Level: LevelWrite},
	{ID: "inventory.delete", Name: "Delete Products", Description: "Remove products from the catalog", Category: CategoryInventory, Level: LevelAdmin},
	{ID: "inventory_management", Name: "Inventory Management", Description: "Full inventory administration", Category: CategoryInventory, Level: LevelAdmin},

	// Suppliers
	{ID: "supplier.view", Name: "View Suppliers", Description: "Browse supplier records and orders", Category: CategorySuppliers, Level: LevelRead},
	{ID: "supplier_management", Name: "Supplier Management", Description: "Create and edit suppliers and purchase orders", Category: CategorySuppliers, Level: LevelWrite},

	// Employees
	{ID: "employee.view", Name: "View Employees", Description: "Browse employee profiles", Category: CategoryEmployees, Level: LevelRead},
	{ID: "employee_management", Name: "Employee Management", Description: "Create, edit and deactivate employees", Category: CategoryEmployees, Level: LevelAdmin},
	{ID: "manage_shifts", Name: "Manage Shifts", Description: "Plan and edit employee shifts", Category: CategoryEmployees, Level: LevelAdmin},

	// Reports
	{ID: "reports", Name: "Reports", Description: "View sales and activity reports", Category: CategoryReports, Level: LevelAdmin},
	{ID: "reports.export", Name: "Export Reports", Description: "Export report data", Category: CategoryReports, Level: LevelWrite},

	// Settings
	{ID: "settings.view", Name: "View Settings", Description: "View business settings", Category: CategorySettings, Level: LevelRead},
	{ID: "settings.edit", Name: "Edit Settings", Description: "Change business settings", Category: CategorySettings, Level: LevelAdmin},

	// Promotions
	{ID: "promotions.view", Name: "View Promotions", Description: "Browse active promotions", Category: CategoryPromotions, Level: LevelRead},
	{ID: "promotions_management", Name: "Promotions Management", Description: "Create and schedule promotions", Category: CategoryPromotions, Level: LevelWrite},

	// Loyalty
	{ID: "loyalty.view", Name: "View Loyalty", Description: "Browse loyalty accounts and balances", Category: CategoryLoyalty, Level: LevelRead},
	{ID: "loyalty.card_create", Name: "Create Loyalty Cards", Description: "Register new loyalty cards at the register", Category: CategoryLoyalty, Level: LevelWrite},
	{ID: "loyalty_management", Name: "Loyalty Management", Description: "Administer the loyalty program", Category: CategoryLoyalty, Level: LevelWrite},
}

// catalogByID indexes the catalog for normalization lookups.
var catalogByID = func() map[string]Permission {
	m := make(map[string]Permission, len(catalog))
	for _, p := range catalog {
		m[p.ID] = p
	}
	return m
}()

// Catalog returns every permission definition. The result is a copy;
// the catalog itself is immutable.
func Catalog() []Permission {
	out := make([]Permission, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup returns the catalog entry for id.
func Lookup(id string) (Permission, bool) {
	p, ok := catalogByID[id]
	return p, ok
}
