package assign

import (
	"github.com/runpro9ja/adminhub/internal/app/system/viewload"
	"github.com/runpro9ja/adminhub/internal/domain/models"
)

var sampleRequests = viewload.NewFixture(
	models.ServiceRequest{
		RequestID: "SR-001", CustomerName: "Adejabola Ayomide", ServiceType: "Babysitting", Status: models.RequestPending,
		DueDate: "15/06/2025", Phone: "+234-801-234-5678", Address: "123 Victoria Island, Lagos", Email: "adejabola@email.com",
		CreatedAt: "10/06/2025", Priority: "Medium",
	},
	models.ServiceRequest{
		RequestID: "SR-002", CustomerName: "Chinedu Okoro", ServiceType: "Plumbing", Status: models.RequestAssigned,
		DueDate: "10/06/2025", Phone: "+234-802-345-6789", Address: "45 Ikeja GRA, Lagos", Email: "chinedu@email.com",
		AssignedTo: "Shade Musab", AssignedEmployeeID: "1", AssignmentDate: "09/06/2025", CreatedAt: "08/06/2025", Priority: "High",
	},
	models.ServiceRequest{
		RequestID: "SR-003", CustomerName: "Funke Adebayo", ServiceType: "Cleaning", Status: models.RequestCompleted,
		DueDate: "20/06/2025", Phone: "+234-803-456-7890", Address: "78 Lekki Phase 1, Lagos", Email: "funke@email.com",
		AssignedTo: "John Adebayo", AssignedEmployeeID: "2", AssignmentDate: "15/06/2025", CompletionDate: "18/06/2025",
		CreatedAt: "12/06/2025", Priority: "Low",
	},
	models.ServiceRequest{
		RequestID: "SR-004", CustomerName: "Bola Ahmed", ServiceType: "Personal Assistant", Status: models.RequestInProgress,
		DueDate: "25/06/2025", Phone: "+234-804-567-8901", Address: "32 Surulere, Lagos", Email: "bola@email.com",
		AssignedTo: "Shade Musab", AssignedEmployeeID: "1", AssignmentDate: "20/06/2025", CreatedAt: "18/06/2025", Priority: "Medium",
	},
	models.ServiceRequest{
		RequestID: "SR-005", CustomerName: "Grace Okafor", ServiceType: "Errand Service", Status: models.RequestRejected,
		DueDate: "12/06/2025", Phone: "+234-805-678-9012", Address: "56 Yaba, Lagos", Email: "grace@email.com",
		RejectionReason: "Service not available in area", CreatedAt: "10/06/2025", Priority: "High",
	},
)

var sampleEmployees = viewload.NewFixture(
	models.Employee{
		ID: "1", Name: "Shade Musab", Role: "Customer Service Agent", Department: "Customer care service",
		Email: "shademusab78@gmail.com", Phone: "+234-809-456-7300", Hired: "22/02/2025",
		Specialization: []string{"Babysitting", "Personal Assistant", "Errand Service"}, CurrentWorkload: 3, MaxWorkload: 8, Rating: 4.8,
	},
	models.Employee{
		ID: "2", Name: "John Adebayo", Role: "Agent Service Manager", Department: "Agent Service Department",
		Email: "john.adebayo@company.com", Phone: "+234-809-456-7400", Hired: "15/01/2025",
		Specialization: []string{"Plumbing", "Cleaning", "Professional Services"}, CurrentWorkload: 5, MaxWorkload: 10, Rating: 4.9,
	},
	models.Employee{
		ID: "3", Name: "Amina Yusuf", Role: "Support Specialist", Department: "Customer care service",
		Email: "amina.yusuf@company.com", Phone: "+234-809-456-7500", Hired: "10/03/2025",
		Specialization: []string{"Cleaning", "Errand Service", "Delivery"}, CurrentWorkload: 2, MaxWorkload: 8, Rating: 4.7,
	},
)
