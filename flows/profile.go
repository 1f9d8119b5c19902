package flows

import (
	"context"
	"strings"

	"github.com/zoe5466/Gudiee-sub001/types"
	"github.com/zoe5466/Gudiee-sub001/wizard"
)

// ProfileBasics is step 1 of profile setup.
type ProfileBasics struct {
	Name     string
	Phone    string
	Location string
}

// ProfileKYC is the identity verification step.
type ProfileKYC struct {
	IDNumber string
	IDFront  string // data URL
	IDBack   string // data URL
}

// ProfileIntro is the self-introduction step.
type ProfileIntro struct {
	Bio         string
	Languages   []string
	Specialties []string
	Experience  int
}

// ProfileForm merges the three steps at submission.
type ProfileForm struct {
	UserID string
	Basics ProfileBasics
	KYC    ProfileKYC
	Intro  ProfileIntro
}

// BioHint is shown under the bio field. It is not enforced.
const BioHint = "建議至少50字，介紹您的導覽風格與經歷"

// Request builds the update payload.
func (f ProfileForm) Request() types.UpdateUserRequest {
	return types.UpdateUserRequest{
		ID:          f.UserID,
		Name:        strings.TrimSpace(f.Basics.Name),
		Phone:       f.Basics.Phone,
		Location:    strings.TrimSpace(f.Basics.Location),
		IDNumber:    strings.ToUpper(strings.TrimSpace(f.KYC.IDNumber)),
		IDFront:     f.KYC.IDFront,
		IDBack:      f.KYC.IDBack,
		Bio:         strings.TrimSpace(f.Intro.Bio),
		Languages:   f.Intro.Languages,
		Specialties: f.Intro.Specialties,
		Experience:  f.Intro.Experience,
	}
}

// ValidateProfileBasics validates step 1.
func ValidateProfileBasics(b ProfileBasics) wizard.ErrorMap {
	errs := wizard.ErrorMap{}
	errs.Add("name", wizard.ValidateName(b.Name))
	errs.Add("phone", wizard.ValidatePhone(b.Phone))
	return errs
}

// ValidateProfileKYC validates the identity step.
func ValidateProfileKYC(k ProfileKYC) wizard.ErrorMap {
	errs := wizard.ErrorMap{}
	errs.Add("idNumber", wizard.ValidateIDNumber(k.IDNumber))
	errs.Add("idFront", wizard.ValidateDataURL(k.IDFront, "身分證正面"))
	errs.Add("idBack", wizard.ValidateDataURL(k.IDBack, "身分證反面"))
	return errs
}

// ValidateProfileIntro validates the last step. Only a non-empty bio is
// required; BioHint is advisory.
func ValidateProfileIntro(i ProfileIntro) wizard.ErrorMap {
	errs := wizard.ErrorMap{}
	errs.Add("bio", wizard.ValidateRequired(i.Bio, "請輸入自我介紹"))
	if i.Experience < 0 {
		errs.Add("experience", "年資不能為負數")
	}
	return errs
}

// ProfileDefinition describes the three-step profile setup wizard.
func ProfileDefinition(auth AuthService) wizard.Definition[ProfileForm] {
	return wizard.Definition[ProfileForm]{
		Name: "profile-setup",
		Steps: []wizard.Step[ProfileForm]{
			{
				Title: "基本資訊",
				Icon:  "👤",
				Fields: []wizard.Field[ProfileForm]{
					wizard.StringField("name", "姓名", wizard.KindText, func(f *ProfileForm) *string { return &f.Basics.Name }),
					wizard.StringField("phone", "手機號碼", wizard.KindPhone, func(f *ProfileForm) *string { return &f.Basics.Phone }).
						With("0912345678", "", false),
					wizard.StringField("location", "所在地區", wizard.KindText, func(f *ProfileForm) *string { return &f.Basics.Location }).
						With("台北市", "", true),
				},
				Validate: func(f *ProfileForm) wizard.ErrorMap { return ValidateProfileBasics(f.Basics) },
			},
			{
				Title: "身分驗證",
				Icon:  "🪪",
				Fields: []wizard.Field[ProfileForm]{
					wizard.StringField("idNumber", "身分證字號", wizard.KindText, func(f *ProfileForm) *string { return &f.KYC.IDNumber }).
						With("A123456789", "", false),
					wizard.FileField("idFront", "身分證正面", func(f *ProfileForm) *string { return &f.KYC.IDFront }).
						With("./id-front.jpg", "圖片檔，最大 5MB", false),
					wizard.FileField("idBack", "身分證反面", func(f *ProfileForm) *string { return &f.KYC.IDBack }).
						With("./id-back.jpg", "圖片檔，最大 5MB", false),
				},
				Validate: func(f *ProfileForm) wizard.ErrorMap { return ValidateProfileKYC(f.KYC) },
			},
			{
				Title: "自我介紹",
				Icon:  "📝",
				Fields: []wizard.Field[ProfileForm]{
					wizard.StringField("bio", "自我介紹", wizard.KindTextArea, func(f *ProfileForm) *string { return &f.Intro.Bio }).
						With("", BioHint, false),
					wizard.ListField("languages", "語言能力", func(f *ProfileForm) *[]string { return &f.Intro.Languages }).
						With("中文, English", "以逗號分隔", true).
						WithOptions(languageOptions),
					wizard.ListField("specialties", "專長", func(f *ProfileForm) *[]string { return &f.Intro.Specialties }).
						With("歷史導覽, 美食", "以逗號分隔", true),
					wizard.IntField("experience", "導遊年資", func(f *ProfileForm) *int { return &f.Intro.Experience }).
						With("0", "", true),
				},
				Validate: func(f *ProfileForm) wizard.ErrorMap { return ValidateProfileIntro(f.Intro) },
			},
		},
		Submit: func(ctx context.Context, f ProfileForm) (wizard.Outcome, error) {
			if f.UserID == "" {
				return wizard.Outcome{}, wizard.UserError("請先登入後再設定個人資料")
			}
			if err := auth.UpdateUser(ctx, f.Request()); err != nil {
				return wizard.Outcome{}, err
			}
			return wizard.Outcome{
				Route:  RouteDashboard,
				Notice: wizard.Notice{Title: "個人資料設定完成！", Body: "我們將於 1-3 個工作天內完成身分審核", Blocking: true},
			}, nil
		},
		Fallback: "更新失敗，請稍後再試",
	}
}

// NewProfileSetup creates the profile setup wizard for user, pre-filling
// what registration already collected.
func NewProfileSetup(auth AuthService, user types.User, opts ...wizard.ControllerOption) *wizard.Controller[ProfileForm] {
	form := ProfileForm{
		UserID: user.ID,
		Basics: ProfileBasics{Name: user.Name, Phone: user.Phone, Location: user.Location},
		Intro:  ProfileIntro{Bio: user.Bio, Languages: user.Languages, Specialties: user.Specialties, Experience: user.Experience},
	}
	return wizard.New(ProfileDefinition(auth), form, opts...)
}
