package models

// SeedPayments returns the static payment ledger used until the academy API serves payments.
func SeedPayments() []Payment {
	return []Payment{
		{ID: "p1", StudentID: 1, Amount: 500000, Date: "2024-07-01", DueDate: "2024-07-05", Status: PaymentStatusPaid},
		{ID: "p2", StudentID: 2, Amount: 500000, Date: "2024-07-02", DueDate: "2024-07-05", Status: PaymentStatusPaid},
		{ID: "p3", StudentID: 3, Amount: 500000, Date: "", DueDate: "2024-07-05", Status: PaymentStatusOverdue},
		{ID: "p4", StudentID: 4, Amount: 500000, Date: "2024-07-05", DueDate: "2024-07-05", Status: PaymentStatusPaid},
		{ID: "p5", StudentID: 5, Amount: 600000, Date: "", DueDate: "2024-07-05", Status: PaymentStatusDue},
		{ID: "p6", StudentID: 6, Amount: 600000, Date: "2024-07-01", DueDate: "2024-07-05", Status: PaymentStatusPaid},
		{ID: "p7", StudentID: 7, Amount: 600000, Date: "", DueDate: "2024-07-05", Status: PaymentStatusDue},
		{ID: "p8", StudentID: 8, Amount: 700000, Date: "2024-06-28", DueDate: "2024-07-05", Status: PaymentStatusPaid},
		{ID: "p9", StudentID: 9, Amount: 700000, Date: "", DueDate: "2024-06-05", Status: PaymentStatusOverdue},
		{ID: "p10", StudentID: 10, Amount: 700000, Date: "2024-07-04", DueDate: "2024-07-05", Status: PaymentStatusPaid},
		{ID: "p11", StudentID: 1, Amount: 500000, Date: "2024-06-03", DueDate: "2024-06-05", Status: PaymentStatusPaid},
		{ID: "p12", StudentID: 5, Amount: 600000, Date: "2024-06-05", DueDate: "2024-06-05", Status: PaymentStatusPaid},
	}
}
