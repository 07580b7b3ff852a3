package model

// All returns every model in migration order.
func All() []interface{} {
	return []interface{}{
		&PurchaseModel{},
		&PaymentModel{},
		&CostItemModel{},
		&ExpenseModel{},
		&ReportSnapshotModel{},
	}
}
