package letters

// successors maps a letter to letters that commonly follow it in Quranic text.
var successors = map[rune][]rune{
	'ا': []rune("لنمتر"),
	'ٱ': []rune("لرس"),
	'أ': []rune("نلمير"),
	'إ': []rune("نليذ"),
	'آ': []rune("ميل"),
	'ء': []rune("ا"),
	'ب': []rune("اسينر"),
	'ت': []rune("ايهمع"),
	'ث': []rune("ملار"),
	'ج': []rune("عالنر"),
	'ح': []rune("ميادق"),
	'خ': []rune("لرياذ"),
	'د': []rune("ايهن"),
	'ذ': []rune("ايلك"),
	'ر': []rune("باضيس"),
	'ز': []rune("قالو"),
	'س': []rune("متلاي"),
	'ش': []rune("يراه"),
	'ص': []rune("لربف"),
	'ض': []rune("لارع"),
	'ط': []rune("ايعل"),
	'ظ': []rune("لنهر"),
	'ع': []rune("لامبن"),
	'غ': []rune("يفرض"),
	'ف': []rune("يارلس"),
	'ق': []rune("الوير"),
	'ك': []rune("املنر"),
	'ل': []rune("الميه"),
	'م': []rune("نايرو"),
	'ن': []rune("ايهمت"),
	'ه': []rune("املوي"),
	'و': []rune("النمه"),
	'ي': []rune("نامهر"),
}

// similar maps a letter to letters sharing its skeleton or dot pattern.
var similar = map[rune][]rune{
	'ا': []rune("أإآٱل"),
	'أ': []rune("اإآؤئ"),
	'إ': []rune("اأآ"),
	'آ': []rune("اأإ"),
	'ٱ': []rune("اأإ"),
	'ء': []rune("أؤئ"),
	'ب': []rune("تثني"),
	'ت': []rune("بثنة"),
	'ث': []rune("تبنش"),
	'ن': []rune("بتثي"),
	'ي': []rune("ىبنئ"),
	'ى': []rune("يا"),
	'ج': []rune("حخ"),
	'ح': []rune("جخ"),
	'خ': []rune("حج"),
	'د': []rune("ذر"),
	'ذ': []rune("دز"),
	'ر': []rune("زدو"),
	'ز': []rune("رذ"),
	'س': []rune("شص"),
	'ش': []rune("سث"),
	'ص': []rune("ضسط"),
	'ض': []rune("صظ"),
	'ط': []rune("ظص"),
	'ظ': []rune("طض"),
	'ع': []rune("غح"),
	'غ': []rune("عف"),
	'ف': []rune("قغ"),
	'ق': []rune("فو"),
	'ك': []rune("لق"),
	'ل': []rune("كا"),
	'م': []rune("ه"),
	'ه': []rune("ةم"),
	'ة': []rune("هت"),
	'و': []rune("ؤر"),
	'ؤ': []rune("وء"),
	'ئ': []rune("يىء"),
}

var vowels = []rune{Fatha, Kasra, Damma, Sukun, Shadda}

// likelyDiacritics maps a preceding rune to the marks that usually follow it.
// Every base letter takes the short vowels, sukun and shadda unless listed.
var likelyDiacritics = func() map[rune][]rune {
	table := make(map[rune][]rune, len(alphabet)+8)
	for _, r := range alphabet {
		table[r] = vowels
	}
	table['ا'] = []rune{Fathatan, RoundedSukun}
	table['أ'] = []rune{Fatha, Damma, Sukun}
	table['إ'] = []rune{Kasra}
	table['ة'] = []rune{Damma, Kasra, Fatha, Dammatan, Kasratan, Fathatan}
	table['ى'] = []rune{SuperscriptAlef}
	table['ل'] = []rune{Fatha, Kasra, Damma, Sukun, Shadda, RoundedSukun}
	table['ه'] = []rune{Fatha, Kasra, Damma, Sukun, SuperscriptAlef, SmallWaw}
	table['ن'] = []rune{Fatha, Kasra, Damma, Sukun, Shadda, RoundedSukun}
	table['م'] = []rune{Fatha, Kasra, Damma, Sukun, Shadda, RoundedSukun}
	table[Shadda] = []rune{Fatha, Damma, Kasra, Fathatan, Dammatan, Kasratan, SuperscriptAlef}
	return table
}()

// relatedDiacritics maps a diacritic to marks it is easily mistaken for.
var relatedDiacritics = map[rune][]rune{
	Fatha:           {Fathatan, Kasra, Damma, SuperscriptAlef},
	Damma:           {Dammatan, Fatha, Kasra, SmallWaw},
	Kasra:           {Kasratan, Fatha, Damma, SmallYeh},
	Sukun:           {RoundedSukun, Shadda, Fatha},
	RoundedSukun:    {Sukun, Shadda, Maddah},
	Shadda:          {Sukun, Fatha, Damma},
	Fathatan:        {Fatha, Dammatan, Kasratan},
	Dammatan:        {Damma, Fathatan, Kasratan},
	Kasratan:        {Kasra, Fathatan, Dammatan},
	SuperscriptAlef: {Fatha, Maddah, Fathatan},
	Maddah:          {SuperscriptAlef, HamzaAbove, Fatha},
	HamzaAbove:      {HamzaBelow, Maddah, Fatha},
	HamzaBelow:      {HamzaAbove, Kasra, Kasratan},
	SmallWaw:        {Damma, SmallYeh, Dammatan},
	SmallYeh:        {Kasra, SmallWaw, Kasratan},
	SubscriptAlef:   {Kasra, HamzaBelow, SuperscriptAlef},

	RoundedZero:     {RectangularZero, Sukun, RoundedSukun},
	RectangularZero: {RoundedZero, Sukun, HighMeem},
	HighMeem:        {LowMeem, HighNoon, RoundedZero},
	LowMeem:         {HighMeem, LowSeen, Kasratan},
	LowSeen:         {LowMeem, HighMeem, Kasra},
	HighMadda:       {Maddah, SuperscriptAlef, HighYeh},
	HighYeh:         {HighNoon, SmallYeh, HighMadda},
	HighNoon:        {HighYeh, HighMeem, RoundedZero},

	WaqfSalaa:    {WaqfQalaa, WaqfJaiz, WaqfLazim},
	WaqfQalaa:    {WaqfSalaa, WaqfJaiz, WaqfLa},
	WaqfLazim:    {WaqfLa, WaqfJaiz, WaqfSalaa},
	WaqfLa:       {WaqfLazim, WaqfJaiz, WaqfQalaa},
	WaqfJaiz:     {WaqfSalaa, WaqfQalaa, WaqfLazim},
	WaqfMuanaqah: {WaqfSakta, WaqfJaiz, WaqfLa},
	WaqfSakta:    {WaqfMuanaqah, WaqfLazim, WaqfSalaa},
}
