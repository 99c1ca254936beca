package reports

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"github.com/khalidoy/gspfinanceback/app/database"
	"github.com/khalidoy/gspfinanceback/app/models"
	"github.com/khalidoy/gspfinanceback/app/services"
)

// NormalProfitReportAPI returns the ten-month profit view of a school year in
// fixed September..June order, plus the yearly insurance totals.
func NormalProfitReportAPI(c *fiber.Ctx, db *sql.DB) error {
	schoolYearID := c.Query("schoolyear_id")
	if schoolYearID == "" {
		return &models.ValidationError{Message: "schoolyear_id query parameter is required"}
	}

	report, err := services.NormalProfitReport(db, schoolYearID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"status":                          "success",
		"data":                            report.Months,
		"total_insurance_agreed_payments": report.TotalInsuranceAgreed,
		"total_students_with_insurance":   report.StudentsWithInsurance,
		"total_yearly_income":             report.TotalYearlyIncome,
	})
}

// UnknownAgreedPaymentsAPI lists active students whose agreed tuition is still
// zero for every month; their contracts have not been entered yet.
func UnknownAgreedPaymentsAPI(c *fiber.Ctx, db *sql.DB) error {
	schoolYearID := c.Query("schoolyear_id")
	if schoolYearID == "" {
		return &models.ValidationError{Message: "schoolyear_id query parameter is required"}
	}
	if _, err := database.GetSchoolYearByID(db, schoolYearID); err != nil {
		return err
	}

	students, err := database.ListUnknownAgreedStudents(db, schoolYearID)
	if err != nil {
		return err
	}
	if students == nil {
		students = []*models.Student{}
	}
	return c.JSON(fiber.Map{"status": "success", "data": students})
}

// PaymentsDistributionAPI buckets students by agreed tuition amount per month
// for the school year named in the query.
func PaymentsDistributionAPI(c *fiber.Ctx, db *sql.DB) error {
	name := c.Query("school_year")
	if name == "" {
		return &models.ValidationError{Message: "school_year query parameter is required"}
	}

	report, err := services.PaymentsDistributionReport(db, name)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"monthly_payment_data": report})
}

// TransportDistributionAPI buckets students by agreed transport amount per
// month for the school year named in the query.
func TransportDistributionAPI(c *fiber.Ctx, db *sql.DB) error {
	name := c.Query("school_year")
	if name == "" {
		return &models.ValidationError{Message: "school_year query parameter is required"}
	}

	report, err := services.TransportDistributionReport(db, name)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"monthly_transport_data": report})
}
