package domain

// Option lists presented by the UI forms. The store does not restrict these
// fields to the lists; free text typed by the operator is kept as-is.

var MilitaryStatusOptions = []string{
	"Yapıldı",
	"Yapılmadı",
	"Muaf",
	"Tecilli",
}

var EducationOptions = []string{
	"İlköğretim",
	"Lise",
	"Ön Lisans",
	"Lisans",
	"Yüksek Lisans",
	"Doktora",
}

var ApplicationSourceOptions = []string{
	"Kariyer.net",
	"LinkedIn",
	"Şirket Web Sitesi",
	"Referans",
	"Diğer",
}

var RejectionReasonOptions = []string{
	"Tecrübe Yetersizliği",
	"Ücret Beklentisi",
	"Teknik Yetersizlik",
	"İletişim Becerileri",
	"Diğer",
}
