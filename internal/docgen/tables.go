package docgen

// Static lookup tables backing the domain mappers. These are data, not logic:
// each mapper walks its rule list in order and the first keyword match wins.
// Keywords are matched lowercase against the input term.

type classRule struct {
	keyword string
	class   string
}

var medicationClassRules = []classRule{
	{"amoxicilline", "Antibiotique"},
	{"azithromycine", "Antibiotique"},
	{"ciprofloxacine", "Antibiotique"},
	{"métronidazole", "Antibiotique"},
	{"metronidazole", "Antibiotique"},
	{"paracétamol", "Antalgique/Antipyrétique"},
	{"paracetamol", "Antalgique/Antipyrétique"},
	{"ibuprofène", "Anti-inflammatoire non stéroïdien"},
	{"ibuprofene", "Anti-inflammatoire non stéroïdien"},
	{"diclofénac", "Anti-inflammatoire non stéroïdien"},
	{"aspirine", "Antiagrégant plaquettaire"},
	{"oméprazole", "Inhibiteur de la pompe à protons"},
	{"omeprazole", "Inhibiteur de la pompe à protons"},
	{"amlodipine", "Antihypertenseur"},
	{"énalapril", "Antihypertenseur"},
	{"enalapril", "Antihypertenseur"},
	{"losartan", "Antihypertenseur"},
	{"atorvastatine", "Hypolipémiant"},
	{"metformine", "Antidiabétique oral"},
	{"gliclazide", "Antidiabétique oral"},
	{"salbutamol", "Bronchodilatateur"},
	{"cétirizine", "Antihistaminique"},
	{"cetirizine", "Antihistaminique"},
	{"loratadine", "Antihistaminique"},
	{"prednisolone", "Corticoïde"},
}

const defaultMedicationClass = "Médicament"

type brandRule struct {
	keyword string
	brand   string
}

// Local-market brand names commonly dispensed in Mauritius.
var mauritianBrandRules = []brandRule{
	{"paracétamol", "Panadol"},
	{"paracetamol", "Panadol"},
	{"ibuprofène", "Brufen"},
	{"ibuprofene", "Brufen"},
	{"amoxicilline", "Amoxil"},
	{"azithromycine", "Zithromax"},
	{"oméprazole", "Losec"},
	{"omeprazole", "Losec"},
	{"amlodipine", "Amlor"},
	{"atorvastatine", "Lipitor"},
	{"metformine", "Glucophage"},
	{"salbutamol", "Ventoline"},
	{"cétirizine", "Zyrtec"},
	{"cetirizine", "Zyrtec"},
	{"aspirine", "Aspégic"},
}

const defaultBrand = "Générique disponible"

const medicationAvailability = "Disponible en pharmacie (Maurice)"

type urgencyRule struct {
	keyword string
	urgency string
}

var labUrgencyRules = []urgencyRule{
	{"troponine", "Urgent"},
	{"gaz du sang", "Urgent"},
	{"d-dimères", "Urgent"},
	{"d-dimeres", "Urgent"},
	{"hémoculture", "Urgent"},
	{"hemoculture", "Urgent"},
	{"crp", "Semi-urgent"},
	{"nfs", "Semi-urgent"},
	{"procalcitonine", "Semi-urgent"},
}

const defaultLabUrgency = "Routine"

type fastingRule struct {
	keyword string
	fasting string
}

var labFastingRules = []fastingRule{
	{"glycémie à jeun", "À jeun strict (8-12h)"},
	{"glycemie a jeun", "À jeun strict (8-12h)"},
	{"glycémie", "À jeun (8h)"},
	{"glycemie", "À jeun (8h)"},
	{"bilan lipidique", "À jeun (12h)"},
	{"cholestérol", "À jeun (12h)"},
	{"cholesterol", "À jeun (12h)"},
	{"triglycérides", "À jeun (12h)"},
	{"triglycerides", "À jeun (12h)"},
}

const defaultLabFasting = "Non requis"

type sampleRule struct {
	keyword string
	sample  string
	tube    string
}

var labSampleRules = []sampleRule{
	{"ecbu", "Urines", "Flacon stérile"},
	{"urinaire", "Urines", "Flacon stérile"},
	{"selles", "Selles", "Pot à coprologie"},
	{"nfs", "Sang veineux", "EDTA (bouchon violet)"},
	{"hémoglobine glyquée", "Sang veineux", "EDTA (bouchon violet)"},
	{"hba1c", "Sang veineux", "EDTA (bouchon violet)"},
	{"tp", "Sang veineux", "Citrate (bouchon bleu)"},
	{"tca", "Sang veineux", "Citrate (bouchon bleu)"},
	{"ionogramme", "Sang veineux", "Héparine (bouchon vert)"},
	{"gaz du sang", "Sang artériel", "Seringue héparinée"},
}

var defaultLabSample = sampleRule{sample: "Sang veineux", tube: "Tube sec (bouchon rouge)"}

type imagingRule struct {
	keyword     string
	category    string
	preparation string
}

var imagingCategoryRules = []imagingRule{
	{"scanner", "Tomodensitométrie", "À jeun 4h si injection prévue; bilan rénal récent"},
	{"tdm", "Tomodensitométrie", "À jeun 4h si injection prévue; bilan rénal récent"},
	{"irm", "IRM", "Signaler tout matériel métallique implanté"},
	{"doppler", "Échographie-Doppler", "Aucune préparation"},
	{"échographie abdominale", "Échographie", "À jeun 6h"},
	{"echographie abdominale", "Échographie", "À jeun 6h"},
	{"échographie", "Échographie", "Aucune préparation"},
	{"echographie", "Échographie", "Aucune préparation"},
	{"écho", "Échographie", "Aucune préparation"},
	{"echo", "Échographie", "Aucune préparation"},
	{"radiographie", "Radiographie standard", "Aucune préparation"},
	{"radio", "Radiographie standard", "Aucune préparation"},
	{"ecg", "Électrocardiogramme", "Aucune préparation"},
	{"électrocardiogramme", "Électrocardiogramme", "Aucune préparation"},
	{"spirométrie", "Exploration fonctionnelle respiratoire", "Éviter bronchodilatateurs 6h avant"},
	{"spirometrie", "Exploration fonctionnelle respiratoire", "Éviter bronchodilatateurs 6h avant"},
}

var defaultImaging = imagingRule{category: "Imagerie médicale", preparation: "Selon protocole du centre d'imagerie"}

var contrastKeywords = []string{"injection", "injecté", "injecte", "avec contraste", "produit de contraste"}

// Baseline laboratory exams included on every biology prescription.
var baselineLabExams = []string{
	"NFS (Numération Formule Sanguine)",
	"CRP (Protéine C-Réactive)",
}

type defaultMedRule struct {
	keyword string
	item    MedicationItem
}

// Generic default medication suggestions keyed on the diagnosis condition.
// These are safety-net placeholders for the doctor to review, not clinical
// recommendations; every emitted default carries genericSuggestionNote.
var defaultMedicationRules = []defaultMedRule{
	{"infection", MedicationItem{
		DCI:               "Amoxicilline",
		Dosage:            "500 mg",
		Frequency:         "3 fois par jour",
		Duration:          "7 jours",
		Quantity:          "21 gélules",
		Instructions:      "À prendre au cours des repas",
		Contraindications: "Allergie aux pénicillines",
	}},
	{"allergie", MedicationItem{
		DCI:               "Cétirizine",
		Dosage:            "10 mg",
		Frequency:         "1 fois par jour",
		Duration:          "5 jours",
		Quantity:          "5 comprimés",
		Instructions:      "De préférence le soir",
		Contraindications: "Insuffisance rénale sévère",
	}},
	{"reflux", MedicationItem{
		DCI:               "Oméprazole",
		Dosage:            "20 mg",
		Frequency:         "1 fois par jour",
		Duration:          "14 jours",
		Quantity:          "14 gélules",
		Instructions:      "Le matin à jeun",
		Contraindications: "Hypersensibilité aux IPP",
	}},
	{"gastrite", MedicationItem{
		DCI:               "Oméprazole",
		Dosage:            "20 mg",
		Frequency:         "1 fois par jour",
		Duration:          "14 jours",
		Quantity:          "14 gélules",
		Instructions:      "Le matin à jeun",
		Contraindications: "Hypersensibilité aux IPP",
	}},
}

// genericAnalgesic is always proposed when the upstream payload carries no
// medication at all, whatever the condition.
var genericAnalgesic = MedicationItem{
	DCI:               "Paracétamol",
	Dosage:            "1 g",
	Frequency:         "3 fois par jour si besoin",
	Duration:          "5 jours",
	Quantity:          "15 comprimés",
	Instructions:      "Ne pas dépasser 3 g par jour",
	Contraindications: "Insuffisance hépatique",
}

type defaultLabRule struct {
	keyword string
	exams   []string
}

var defaultLabRules = []defaultLabRule{
	{"diabète", []string{"Glycémie à jeun", "HbA1c (Hémoglobine glyquée)"}},
	{"diabete", []string{"Glycémie à jeun", "HbA1c (Hémoglobine glyquée)"}},
	{"hypertension", []string{"Ionogramme sanguin", "Créatininémie", "Bilan lipidique"}},
	{"infection", []string{"Procalcitonine", "Hémocultures"}},
	{"anémie", []string{"Ferritinémie", "Vitamine B12"}},
	{"anemie", []string{"Ferritinémie", "Vitamine B12"}},
	{"thyroïde", []string{"TSH"}},
	{"thyroide", []string{"TSH"}},
	{"hépat", []string{"Bilan hépatique (ASAT, ALAT, GGT)"}},
	{"hepat", []string{"Bilan hépatique (ASAT, ALAT, GGT)"}},
}

type defaultImagingRuleT struct {
	keyword string
	exams   []string
}

var defaultImagingRules = []defaultImagingRuleT{
	{"hypertension", []string{"ECG de repos", "Échographie cardiaque"}},
	{"cardiaque", []string{"ECG de repos", "Échographie cardiaque"}},
	{"thorax", []string{"Radiographie du thorax"}},
	{"pulmon", []string{"Radiographie du thorax"}},
	{"pneumonie", []string{"Radiographie du thorax"}},
	{"toux", []string{"Radiographie du thorax"}},
	{"abdom", []string{"Échographie abdominale"}},
	{"lombalgie", []string{"Radiographie du rachis lombaire"}},
}

const genericSuggestionNote = "Suggestion générique — à valider par le médecin"
