package model

// Prescription links medication and dosage text to an appointment
type Prescription struct {
	ID            int64  `db:"id" json:"prescriptionId"`
	AppointmentID int64  `db:"appointment_id" json:"appointmentId"`
	Medication    string `db:"medication" json:"medication"`
	Dosage        string `db:"dosage" json:"dosage"`
}

// PrescriptionRecord is the read projection joined with the owning
// appointment's doctor and patient names.
type PrescriptionRecord struct {
	PrescriptionID int64  `db:"prescription_id" json:"prescriptionId"`
	Medication     string `db:"medication" json:"medication"`
	Dosage         string `db:"dosage" json:"dosage"`
	AppointmentID  int64  `db:"appointment_id" json:"appointmentId"`
	DoctorName     string `db:"doctor_name" json:"doctorName"`
	PatientName    string `db:"patient_name" json:"patientName"`
}

// CreatePrescriptionRequest is the create payload
type CreatePrescriptionRequest struct {
	AppointmentID int64  `json:"appointmentId" binding:"required"`
	Medication    string `json:"medication" binding:"required,max=500"`
	Dosage        string `json:"dosage" binding:"required,max=200"`
}

// UpdatePrescriptionRequest replaces the medication and dosage text
type UpdatePrescriptionRequest struct {
	Medication string `json:"medication" binding:"required,max=500"`
	Dosage     string `json:"dosage" binding:"required,max=200"`
}
