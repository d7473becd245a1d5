// Package reference holds the static benchmark tables bills are judged against.
// The tables are built once at package init and are only reachable through lookups.
package reference

// Procedure is a fair-price benchmark for a billing code.
type Procedure struct {
	Code        string
	Description string
	FairPrice   float64
}

var procedures = map[string]Procedure{
	// Office visits
	"99202": {"99202", "Office visit, new patient, straightforward", 110.00},
	"99203": {"99203", "Office visit, new patient, low complexity", 165.00},
	"99204": {"99204", "Office visit, new patient, moderate complexity", 250.00},
	"99205": {"99205", "Office visit, new patient, high complexity", 320.00},
	"99211": {"99211", "Office visit, established patient, minimal", 45.00},
	"99212": {"99212", "Office visit, established patient, straightforward", 85.00},
	"99213": {"99213", "Office visit, established patient, low complexity", 130.00},
	"99214": {"99214", "Office visit, established patient, moderate complexity", 190.00},
	"99215": {"99215", "Office visit, established patient, high complexity", 260.00},

	// Emergency department
	"99281": {"99281", "Emergency department visit, level 1", 95.00},
	"99282": {"99282", "Emergency department visit, level 2", 185.00},
	"99283": {"99283", "Emergency department visit, level 3", 290.00},
	"99284": {"99284", "Emergency department visit, level 4", 480.00},
	"99285": {"99285", "Emergency department visit, level 5", 710.00},

	// Laboratory
	"36415": {"36415", "Routine venipuncture", 10.00},
	"80048": {"80048", "Basic metabolic panel", 30.00},
	"80053": {"80053", "Comprehensive metabolic panel", 40.00},
	"80061": {"80061", "Lipid panel", 35.00},
	"81001": {"81001", "Urinalysis with microscopy", 15.00},
	"83036": {"83036", "Hemoglobin A1C", 25.00},
	"84443": {"84443", "Thyroid stimulating hormone (TSH)", 45.00},
	"85025": {"85025", "Complete blood count with differential", 25.00},
	"87086": {"87086", "Urine culture, bacterial", 20.00},

	// Imaging and diagnostics
	"70450": {"70450", "CT head without contrast", 250.00},
	"70553": {"70553", "MRI brain with and without contrast", 650.00},
	"71046": {"71046", "Chest X-ray, 2 views", 65.00},
	"72148": {"72148", "MRI lumbar spine without contrast", 520.00},
	"73030": {"73030", "Shoulder X-ray, minimum 2 views", 60.00},
	"74177": {"74177", "CT abdomen and pelvis with contrast", 450.00},
	"76700": {"76700", "Ultrasound, complete abdomen", 180.00},
	"93000": {"93000", "Electrocardiogram (ECG) with interpretation", 35.00},

	// Procedures
	"10060": {"10060", "Incision and drainage of abscess, simple", 150.00},
	"12001": {"12001", "Simple repair of superficial wound, 2.5 cm or less", 180.00},
	"29125": {"29125", "Application of short arm splint", 120.00},
	"43239": {"43239", "Upper GI endoscopy with biopsy", 850.00},
	"45378": {"45378", "Diagnostic colonoscopy", 900.00},

	// Therapy
	"90834": {"90834", "Psychotherapy, 45 minutes", 120.00},
	"90837": {"90837", "Psychotherapy, 60 minutes", 160.00},
	"97110": {"97110", "Therapeutic exercise, each 15 minutes", 45.00},
	"97140": {"97140", "Manual therapy techniques, each 15 minutes", 40.00},
	"97161": {"97161", "Physical therapy evaluation, low complexity", 110.00},

	// Injections and drugs
	"90471": {"90471", "Immunization administration", 30.00},
	"96372": {"96372", "Therapeutic injection, subcutaneous or intramuscular", 35.00},
	"J0696": {"J0696", "Ceftriaxone sodium, per 250 mg", 12.00},
	"J1885": {"J1885", "Ketorolac tromethamine, per 15 mg", 5.00},
	"J2270": {"J2270", "Morphine sulfate, up to 10 mg", 8.00},
	"J7030": {"J7030", "Normal saline solution infusion, 1000 cc", 15.00},
}

// LookupProcedure returns the fair-price benchmark for a procedure code.
func LookupProcedure(code string) (Procedure, bool) {
	p, ok := procedures[code]
	return p, ok
}

// ProcedureCount is the number of codes with a benchmark.
func ProcedureCount() int {
	return len(procedures)
}
