package campus

import "time"

// Collection names.
const (
	CollectionStudents            = "students"
	CollectionFaculties           = "faculties"
	CollectionAdmins              = "admins"
	CollectionCourses             = "courses"
	CollectionAcademicSemesters   = "academicsemesters"
	CollectionAcademicDepartments = "academicdepartments"
	CollectionAcademicFaculties   = "academicfaculties"
)

// UserName is the embedded person name shared by students, faculty and admins.
type UserName struct {
	FirstName  string `bson:"firstName,omitempty" json:"firstName,omitempty"`
	MiddleName string `bson:"middleName,omitempty" json:"middleName,omitempty"`
	LastName   string `bson:"lastName,omitempty" json:"lastName,omitempty"`
}

// Guardian holds a student's parents.
type Guardian struct {
	FatherName       string `bson:"fatherName,omitempty" json:"fatherName,omitempty"`
	FatherOccupation string `bson:"fatherOccupation,omitempty" json:"fatherOccupation,omitempty"`
	FatherContactNo  string `bson:"fatherContactNo,omitempty" json:"fatherContactNo,omitempty"`
	MotherName       string `bson:"motherName,omitempty" json:"motherName,omitempty"`
	MotherOccupation string `bson:"motherOccupation,omitempty" json:"motherOccupation,omitempty"`
	MotherContactNo  string `bson:"motherContactNo,omitempty" json:"motherContactNo,omitempty"`
}

// LocalGuardian is the student's contact near campus.
type LocalGuardian struct {
	Name       string `bson:"name,omitempty" json:"name,omitempty"`
	Occupation string `bson:"occupation,omitempty" json:"occupation,omitempty"`
	ContactNo  string `bson:"contactNo,omitempty" json:"contactNo,omitempty"`
	Address    string `bson:"address,omitempty" json:"address,omitempty"`
}

// AcademicSemester is a term of admission.
type AcademicSemester struct {
	ID         string     `bson:"_id,omitempty" json:"_id,omitempty"`
	Name       string     `bson:"name,omitempty" json:"name,omitempty"`
	Year       string     `bson:"year,omitempty" json:"year,omitempty"`
	Code       string     `bson:"code,omitempty" json:"code,omitempty"`
	StartMonth string     `bson:"startMonth,omitempty" json:"startMonth,omitempty"`
	EndMonth   string     `bson:"endMonth,omitempty" json:"endMonth,omitempty"`
	CreatedAt  *time.Time `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt  *time.Time `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// AcademicFaculty groups departments.
type AcademicFaculty struct {
	ID        string     `bson:"_id,omitempty" json:"_id,omitempty"`
	Name      string     `bson:"name,omitempty" json:"name,omitempty"`
	CreatedAt *time.Time `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt *time.Time `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// AcademicDepartment belongs to an academic faculty.
type AcademicDepartment struct {
	ID              string     `bson:"_id,omitempty" json:"_id,omitempty"`
	Name            string     `bson:"name,omitempty" json:"name,omitempty"`
	AcademicFaculty string     `bson:"academicFaculty,omitempty" json:"academicFaculty,omitempty"`
	CreatedAt       *time.Time `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt       *time.Time `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// Student is a listed student row. AdmissionSemester and AcademicDepartment
// arrive expanded from their collections.
type Student struct {
	ID                 string              `bson:"_id,omitempty" json:"_id,omitempty"`
	UserID             string              `bson:"id,omitempty" json:"id,omitempty"`
	User               string              `bson:"user,omitempty" json:"user,omitempty"`
	Name               *UserName           `bson:"name,omitempty" json:"name,omitempty"`
	Gender             string              `bson:"gender,omitempty" json:"gender,omitempty"`
	DateOfBirth        *time.Time          `bson:"dateOfBirth,omitempty" json:"dateOfBirth,omitempty"`
	Email              string              `bson:"email,omitempty" json:"email,omitempty"`
	ContactNo          string              `bson:"contactNo,omitempty" json:"contactNo,omitempty"`
	EmergencyContactNo string              `bson:"emergencyContactNo,omitempty" json:"emergencyContactNo,omitempty"`
	BloodGroup         string              `bson:"bloodGroup,omitempty" json:"bloodGroup,omitempty"`
	PresentAddress     string              `bson:"presentAddress,omitempty" json:"presentAddress,omitempty"`
	PermanentAddress   string              `bson:"permanentAddress,omitempty" json:"permanentAddress,omitempty"`
	Guardian           *Guardian           `bson:"guardian,omitempty" json:"guardian,omitempty"`
	LocalGuardian      *LocalGuardian      `bson:"localGuardian,omitempty" json:"localGuardian,omitempty"`
	ProfileImg         string              `bson:"profileImg,omitempty" json:"profileImg,omitempty"`
	AdmissionSemester  *AcademicSemester   `bson:"admissionSemester,omitempty" json:"admissionSemester,omitempty"`
	AcademicDepartment *AcademicDepartment `bson:"academicDepartment,omitempty" json:"academicDepartment,omitempty"`
	IsDeleted          bool                `bson:"isDeleted,omitempty" json:"isDeleted,omitempty"`
	CreatedAt          *time.Time          `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt          *time.Time          `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// Faculty is a listed faculty member.
type Faculty struct {
	ID                 string     `bson:"_id,omitempty" json:"_id,omitempty"`
	UserID             string     `bson:"id,omitempty" json:"id,omitempty"`
	User               string     `bson:"user,omitempty" json:"user,omitempty"`
	Designation        string     `bson:"designation,omitempty" json:"designation,omitempty"`
	Name               *UserName  `bson:"name,omitempty" json:"name,omitempty"`
	Gender             string     `bson:"gender,omitempty" json:"gender,omitempty"`
	DateOfBirth        *time.Time `bson:"dateOfBirth,omitempty" json:"dateOfBirth,omitempty"`
	Email              string     `bson:"email,omitempty" json:"email,omitempty"`
	ContactNo          string     `bson:"contactNo,omitempty" json:"contactNo,omitempty"`
	EmergencyContactNo string     `bson:"emergencyContactNo,omitempty" json:"emergencyContactNo,omitempty"`
	BloodGroup         string     `bson:"bloodGroup,omitempty" json:"bloodGroup,omitempty"`
	PresentAddress     string     `bson:"presentAddress,omitempty" json:"presentAddress,omitempty"`
	PermanentAddress   string     `bson:"permanentAddress,omitempty" json:"permanentAddress,omitempty"`
	ProfileImg         string     `bson:"profileImg,omitempty" json:"profileImg,omitempty"`
	AcademicDepartment string     `bson:"academicDepartment,omitempty" json:"academicDepartment,omitempty"`
	IsDeleted          bool       `bson:"isDeleted,omitempty" json:"isDeleted,omitempty"`
	CreatedAt          *time.Time `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt          *time.Time `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// Admin is a listed administrator.
type Admin struct {
	ID                   string     `bson:"_id,omitempty" json:"_id,omitempty"`
	UserID               string     `bson:"id,omitempty" json:"id,omitempty"`
	User                 string     `bson:"user,omitempty" json:"user,omitempty"`
	Designation          string     `bson:"designation,omitempty" json:"designation,omitempty"`
	Name                 *UserName  `bson:"name,omitempty" json:"name,omitempty"`
	Gender               string     `bson:"gender,omitempty" json:"gender,omitempty"`
	DateOfBirth          *time.Time `bson:"dateOfBirth,omitempty" json:"dateOfBirth,omitempty"`
	Email                string     `bson:"email,omitempty" json:"email,omitempty"`
	ContactNo            string     `bson:"contactNo,omitempty" json:"contactNo,omitempty"`
	EmergencyContactNo   string     `bson:"emergencyContactNo,omitempty" json:"emergencyContactNo,omitempty"`
	BloodGroup           string     `bson:"bloodGroup,omitempty" json:"bloodGroup,omitempty"`
	PresentAddress       string     `bson:"presentAddress,omitempty" json:"presentAddress,omitempty"`
	PermanentAddress     string     `bson:"permanentAddress,omitempty" json:"permanentAddress,omitempty"`
	ProfileImg           string     `bson:"profileImg,omitempty" json:"profileImg,omitempty"`
	ManagementDepartment string     `bson:"managementDepartment,omitempty" json:"managementDepartment,omitempty"`
	IsDeleted            bool       `bson:"isDeleted,omitempty" json:"isDeleted,omitempty"`
	CreatedAt            *time.Time `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt            *time.Time `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// PreRequisite links a course to one it depends on.
type PreRequisite struct {
	Course    string `bson:"course,omitempty" json:"course,omitempty"`
	IsDeleted bool   `bson:"isDeleted,omitempty" json:"isDeleted,omitempty"`
}

// Course is a listed course.
type Course struct {
	ID                  string         `bson:"_id,omitempty" json:"_id,omitempty"`
	Title               string         `bson:"title,omitempty" json:"title,omitempty"`
	Prefix              string         `bson:"prefix,omitempty" json:"prefix,omitempty"`
	Code                float64        `bson:"code,omitempty" json:"code,omitempty"`
	Credits             float64        `bson:"credits,omitempty" json:"credits,omitempty"`
	PreRequisiteCourses []PreRequisite `bson:"preRequisiteCourses,omitempty" json:"preRequisiteCourses,omitempty"`
	IsDeleted           bool           `bson:"isDeleted,omitempty" json:"isDeleted,omitempty"`
	CreatedAt           *time.Time     `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt           *time.Time     `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}
