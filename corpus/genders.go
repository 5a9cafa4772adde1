package corpus

// emotionGenders covers every speaker of the Korean emotional speech corpus.
var emotionGenders = map[string]string{
	"ADA": Female, "ADB": Female, "ADC": Male, "ADD": Male,
	"AVA": Female, "AVB": Female, "AVC": Female, "AVD": Female,
	"EMA": Female, "EMB": Female, "EMF": Male, "EMG": Male, "EMH": Male,
	"LMY": Female,
	"NEA": Female, "NEB": Female, "NEC": Female, "NED": Female, "NEE": Female,
	"NEK": Male, "NEL": Male, "NEM": Male, "NEN": Male, "NEO": Male,
}

// vctkGenders is keyed by the upper-cased speaker directory of VCTK 0.92.
var vctkGenders = map[string]string{
	"P225": Female, "P226": Male, "P227": Male, "P228": Female,
	"P229": Female, "P230": Female, "P231": Female, "P232": Male,
	"P233": Female, "P234": Female, "P236": Female, "P237": Male,
	"P238": Female, "P239": Female, "P240": Female, "P241": Male,
	"P243": Male, "P244": Female, "P245": Male, "P246": Male,
	"P247": Male, "P248": Female, "P249": Female, "P250": Female,
	"P251": Male, "P252": Male, "P253": Female, "P254": Male,
	"P255": Male, "P256": Male, "P257": Female, "P258": Male,
	"P259": Male, "P260": Male, "P261": Female, "P262": Female,
	"P263": Male, "P264": Female, "P265": Female, "P266": Female,
	"P267": Female, "P268": Female, "P269": Female, "P270": Male,
	"P271": Male, "P272": Male, "P273": Male, "P274": Male,
	"P275": Male, "P276": Female, "P277": Female, "P278": Male,
	"P279": Male, "P280": Female, "P281": Male, "P282": Female,
	"P283": Male, "P284": Male, "P285": Male, "P286": Male,
	"P287": Male, "P288": Female, "P292": Male, "P293": Female,
	"P294": Female, "P295": Female, "P297": Female, "P298": Male,
	"P299": Female, "P300": Female, "P301": Female, "P302": Male,
	"P303": Female, "P304": Male, "P305": Female, "P306": Female,
	"P307": Female, "P308": Female, "P310": Female, "P311": Male,
	"P312": Female, "P313": Female, "P314": Female, "P316": Male,
	"P317": Female, "P318": Female, "P323": Female, "P326": Male,
	"P329": Female, "P330": Female, "P333": Female, "P334": Male,
	"P335": Female, "P336": Female, "P339": Female, "P340": Female,
	"P341": Female, "P343": Female, "P345": Male, "P347": Male,
	"P351": Female, "P360": Male, "P361": Female, "P362": Female,
	"P363": Male, "P364": Male, "P374": Male, "P376": Male,
	"S5": Female,
}
