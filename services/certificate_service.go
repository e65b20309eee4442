package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"
	"time"

	config "github.com/anjiri1684/english_academy/configs"
	"github.com/anjiri1684/english_academy/database"
	"github.com/anjiri1684/english_academy/models"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var certificateCloudinaryURL string

// InitCertificateService stores the Cloudinary URL used for certificate uploads.
func InitCertificateService(cfg *config.Config) {
	certificateCloudinaryURL = cfg.Cloudinary.URL
}

// CheckAndGenerateCertificate issues a completion certificate once the student
// has a graded submission for every activity of the course and a passing
// attempt on every exam of the course. Safe to call repeatedly; it does
// nothing if the course is incomplete or a certificate already exists.
func CheckAndGenerateCertificate(studentID, courseID uint) {
	if !courseCompletedByStudent(studentID, courseID) {
		return
	}

	var existing models.Certificate
	if err := database.DB.Where("student_id = ? AND course_id = ?", studentID, courseID).First(&existing).Error; err == nil {
		return
	}

	var student models.Student
	if err := database.DB.Preload("User").First(&student, "id = ?", studentID).Error; err != nil {
		logrus.Errorf("🔥 Certificate: student %d not found: %v", studentID, err)
		return
	}
	var course models.Course
	if err := database.DB.Preload("Teacher").First(&course, "id = ?", courseID).Error; err != nil {
		logrus.Errorf("🔥 Certificate: course %d not found: %v", courseID, err)
		return
	}

	serial := newSerialNumber()
	htmlData, err := renderCertificateHTML(student.User.FullName, course.Teacher.FullName, course.Title, serial)
	if err != nil {
		logrus.Errorf("🔥 Failed to render certificate HTML: %v", err)
		return
	}

	pdfBytes, err := generatePDFFromHTML(htmlData)
	if err != nil {
		logrus.Errorf("🔥 Failed to generate certificate PDF: %v", err)
		return
	}

	uploadURL, err := uploadCertificate(pdfBytes, studentID, courseID)
	if err != nil {
		logrus.Errorf("🔥 Failed to upload certificate to Cloudinary: %v", err)
		return
	}

	certificate := models.Certificate{
		StudentID:      studentID,
		CourseID:       courseID,
		SerialNumber:   serial,
		CompletionDate: time.Now(),
		CertificateURL: uploadURL,
	}
	if err := database.DB.Create(&certificate).Error; err != nil {
		logrus.Errorf("🔥 Failed to create certificate record for student %d: %v", studentID, err)
		return
	}

	database.DB.Model(&models.Enrollment{}).
		Where("student_id = ? AND course_id = ?", studentID, courseID).
		Update("status", models.EnrollmentStatusCompleted)

	logrus.Infof("✅ Generated certificate %s for student %d on course '%s'.", serial, studentID, course.Title)
}

func courseCompletedByStudent(studentID, courseID uint) bool {
	var totalActivities int64
	database.DB.Model(&models.Activity{}).
		Where("course_id = ?", courseID).
		Count(&totalActivities)

	var gradedSubmissions int64
	database.DB.Model(&models.ActivitySubmission{}).
		Joins("JOIN activities ON activities.id = activity_submissions.activity_id").
		Where("activity_submissions.student_id = ? AND activities.course_id = ? AND activity_submissions.graded_at IS NOT NULL",
			studentID, courseID).
		Count(&gradedSubmissions)
	if gradedSubmissions < totalActivities {
		return false
	}

	var totalExams int64
	database.DB.Model(&models.Exam{}).
		Where("course_id = ?", courseID).
		Count(&totalExams)

	var passedExams int64
	database.DB.Model(&models.ExamAttempt{}).
		Joins("JOIN exams ON exams.id = exam_attempts.exam_id").
		Where("exam_attempts.student_id = ? AND exams.course_id = ? AND exam_attempts.passed = ?",
			studentID, courseID, true).
		Distinct("exam_attempts.exam_id").
		Count(&passedExams)
	if passedExams < totalExams {
		return false
	}

	if totalActivities == 0 && totalExams == 0 {
		return false
	}
	return true
}

func newSerialNumber() string {
	return "EA-" + strings.ToUpper(uuid.New().String()[:18])
}

func renderCertificateHTML(studentName, teacherName, courseTitle, serial string) (string, error) {
	tmpl, err := template.ParseFiles("templates/certificate.html")
	if err != nil {
		return "", err
	}

	data := struct {
		StudentName    string
		TeacherName    string
		CourseTitle    string
		SerialNumber   string
		CompletionDate string
	}{
		StudentName:    studentName,
		TeacherName:    teacherName,
		CourseTitle:    courseTitle,
		SerialNumber:   serial,
		CompletionDate: time.Now().Format("January 2, 2006"),
	}

	var renderedHTML bytes.Buffer
	if err := tmpl.Execute(&renderedHTML, data); err != nil {
		return "", err
	}
	return renderedHTML.String(), nil
}

func generatePDFFromHTML(htmlContent string) ([]byte, error) {
	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	var pdfBuffer []byte
	err := chromedp.Run(ctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, htmlContent).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			pdf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdfBuffer = pdf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuffer, nil
}

func uploadCertificate(fileBytes []byte, studentID, courseID uint) (string, error) {
	cld, err := cloudinary.NewFromURL(certificateCloudinaryURL)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	uploadParams := uploader.UploadParams{
		PublicID:     fmt.Sprintf("certificates/%d_%d_%s", studentID, courseID, uuid.New().String()),
		Folder:       "english_academy_certificates",
		ResourceType: "raw",
	}

	uploadResult, err := cld.Upload.Upload(ctx, bytes.NewReader(fileBytes), uploadParams)
	if err != nil {
		return "", err
	}
	return uploadResult.SecureURL, nil
}
