package language

// languages lists every ISO 639-2 code with its ISO 639-1 counterpart and
// bibliographic variant where one exists.
var languages = []Entry{
	{"aa", "aar", "", "Afar"},
	{"ab", "abk", "", "Abkhazian"},
	{"", "ace", "", "Achinese"},
	{"", "ach", "", "Acoli"},
	{"", "ada", "", "Adangme"},
	{"", "ady", "", "Adyghe"},
	{"", "afa", "", "Afro-Asiatic languages"},
	{"", "afh", "", "Afrihili"},
	{"af", "afr", "", "Afrikaans"},
	{"", "ain", "", "Ainu"},
	{"ak", "aka", "", "Akan"},
	{"", "akk", "", "Akkadian"},
	{"sq", "sqi", "alb", "Albanian"},
	{"", "ale", "", "Aleut"},
	{"", "alg", "", "Algonquian languages"},
	{"", "alt", "", "Southern Altai"},
	{"am", "amh", "", "Amharic"},
	{"", "ang", "", "Old English"},
	{"", "anp", "", "Angika"},
	{"", "apa", "", "Apache languages"},
	{"ar", "ara", "", "Arabic"},
	{"", "arc", "", "Aramaic"},
	{"an", "arg", "", "Aragonese"},
	{"hy", "hye", "arm", "Armenian"},
	{"", "arn", "", "Mapudungun"},
	{"", "arp", "", "Arapaho"},
	{"", "art", "", "Artificial languages"},
	{"", "arw", "", "Arawak"},
	{"as", "asm", "", "Assamese"},
	{"", "ast", "", "Asturian"},
	{"", "ath", "", "Athapascan languages"},
	{"", "aus", "", "Australian languages"},
	{"av", "ava", "", "Avaric"},
	{"ae", "ave", "", "Avestan"},
	{"", "awa", "", "Awadhi"},
	{"ay", "aym", "", "Aymara"},
	{"az", "aze", "", "Azerbaijani"},
	{"", "bad", "", "Banda languages"},
	{"", "bai", "", "Bamileke languages"},
	{"ba", "bak", "", "Bashkir"},
	{"", "bal", "", "Baluchi"},
	{"bm", "bam", "", "Bambara"},
	{"", "ban", "", "Balinese"},
	{"eu", "eus", "baq", "Basque"},
	{"", "bas", "", "Basa"},
	{"", "bat", "", "Baltic languages"},
	{"", "bej", "", "Beja"},
	{"be", "bel", "", "Belarusian"},
	{"", "bem", "", "Bemba"},
	{"bn", "ben", "", "Bengali"},
	{"", "ber", "", "Berber languages"},
	{"", "bho", "", "Bhojpuri"},
	{"bh", "bih", "", "Bihari languages"},
	{"", "bik", "", "Bikol"},
	{"", "bin", "", "Bini"},
	{"bi", "bis", "", "Bislama"},
	{"", "bla", "", "Siksika"},
	{"", "bnt", "", "Bantu languages"},
	{"bs", "bos", "", "Bosnian"},
	{"", "bra", "", "Braj"},
	{"br", "bre", "", "Breton"},
	{"", "btk", "", "Batak languages"},
	{"", "bua", "", "Buriat"},
	{"", "bug", "", "Buginese"},
	{"bg", "bul", "", "Bulgarian"},
	{"my", "mya", "bur", "Burmese"},
	{"", "byn", "", "Blin"},
	{"", "cad", "", "Caddo"},
	{"", "cai", "", "Central American Indian languages"},
	{"", "car", "", "Galibi Carib"},
	{"ca", "cat", "", "Catalan"},
	{"", "cau", "", "Caucasian languages"},
	{"", "ceb", "", "Cebuano"},
	{"", "cel", "", "Celtic languages"},
	{"ch", "cha", "", "Chamorro"},
	{"", "chb", "", "Chibcha"},
	{"ce", "che", "", "Chechen"},
	{"", "chg", "", "Chagatai"},
	{"zh", "zho", "chi", "Chinese"},
	{"", "chk", "", "Chuukese"},
	{"", "chm", "", "Mari"},
	{"", "chn", "", "Chinook jargon"},
	{"", "cho", "", "Choctaw"},
	{"", "chp", "", "Chipewyan"},
	{"", "chr", "", "Cherokee"},
	{"cu", "chu", "", "Church Slavic"},
	{"cv", "chv", "", "Chuvash"},
	{"", "chy", "", "Cheyenne"},
	{"", "cmc", "", "Chamic languages"},
	{"", "cnr", "", "Montenegrin"},
	{"", "cop", "", "Coptic"},
	{"kw", "cor", "", "Cornish"},
	{"co", "cos", "", "Corsican"},
	{"", "cpe", "", "English-based creoles and pidgins"},
	{"", "cpf", "", "French-based creoles and pidgins"},
	{"", "cpp", "", "Portuguese-based creoles and pidgins"},
	{"cr", "cre", "", "Cree"},
	{"", "crh", "", "Crimean Tatar"},
	{"", "crp", "", "Creoles and pidgins"},
	{"", "csb", "", "Kashubian"},
	{"", "cus", "", "Cushitic languages"},
	{"cs", "ces", "cze", "Czech"},
	{"", "dak", "", "Dakota"},
	{"da", "dan", "", "Danish"},
	{"", "dar", "", "Dargwa"},
	{"", "day", "", "Land Dayak languages"},
	{"", "del", "", "Delaware"},
	{"", "den", "", "Slave (Athapascan)"},
	{"", "dgr", "", "Dogrib"},
	{"", "din", "", "Dinka"},
	{"dv", "div", "", "Divehi"},
	{"", "doi", "", "Dogri"},
	{"", "dra", "", "Dravidian languages"},
	{"", "dsb", "", "Lower Sorbian"},
	{"", "dua", "", "Duala"},
	{"", "dum", "", "Middle Dutch"},
	{"nl", "nld", "dut", "Dutch"},
	{"", "dyu", "", "Dyula"},
	{"dz", "dzo", "", "Dzongkha"},
	{"", "efi", "", "Efik"},
	{"", "egy", "", "Ancient Egyptian"},
	{"", "eka", "", "Ekajuk"},
	{"", "elx", "", "Elamite"},
	{"en", "eng", "", "English"},
	{"", "enm", "", "Middle English"},
	{"eo", "epo", "", "Esperanto"},
	{"et", "est", "", "Estonian"},
	{"ee", "ewe", "", "Ewe"},
	{"", "ewo", "", "Ewondo"},
	{"", "fan", "", "Fang"},
	{"fo", "fao", "", "Faroese"},
	{"", "fat", "", "Fanti"},
	{"fj", "fij", "", "Fijian"},
	{"", "fil", "", "Filipino"},
	{"fi", "fin", "", "Finnish"},
	{"", "fiu", "", "Finno-Ugrian languages"},
	{"", "fon", "", "Fon"},
	{"fr", "fra", "fre", "French"},
	{"", "frm", "", "Middle French"},
	{"", "fro", "", "Old French"},
	{"", "frr", "", "Northern Frisian"},
	{"", "frs", "", "Eastern Frisian"},
	{"fy", "fry", "", "Western Frisian"},
	{"ff", "ful", "", "Fulah"},
	{"", "fur", "", "Friulian"},
	{"", "gaa", "", "Ga"},
	{"", "gay", "", "Gayo"},
	{"", "gba", "", "Gbaya"},
	{"", "gem", "", "Germanic languages"},
	{"ka", "kat", "geo", "Georgian"},
	{"de", "deu", "ger", "German"},
	{"", "gez", "", "Geez"},
	{"", "gil", "", "Gilbertese"},
	{"gd", "gla", "", "Gaelic"},
	{"ga", "gle", "", "Irish"},
	{"gl", "glg", "", "Galician"},
	{"gv", "glv", "", "Manx"},
	{"", "gmh", "", "Middle High German"},
	{"", "goh", "", "Old High German"},
	{"", "gon", "", "Gondi"},
	{"", "gor", "", "Gorontalo"},
	{"", "got", "", "Gothic"},
	{"", "grb", "", "Grebo"},
	{"", "grc", "", "Ancient Greek"},
	{"el", "ell", "gre", "Greek"},
	{"gn", "grn", "", "Guarani"},
	{"", "gsw", "", "Swiss German"},
	{"gu", "guj", "", "Gujarati"},
	{"", "gwi", "", "Gwich'in"},
	{"", "hai", "", "Haida"},
	{"ht", "hat", "", "Haitian"},
	{"ha", "hau", "", "Hausa"},
	{"", "haw", "", "Hawaiian"},
	{"he", "heb", "", "Hebrew"},
	{"hz", "her", "", "Herero"},
	{"", "hil", "", "Hiligaynon"},
	{"", "him", "", "Himachali languages"},
	{"hi", "hin", "", "Hindi"},
	{"", "hit", "", "Hittite"},
	{"", "hmn", "", "Hmong"},
	{"ho", "hmo", "", "Hiri Motu"},
	{"hr", "hrv", "", "Croatian"},
	{"", "hsb", "", "Upper Sorbian"},
	{"hu", "hun", "", "Hungarian"},
	{"", "hup", "", "Hupa"},
	{"", "iba", "", "Iban"},
	{"ig", "ibo", "", "Igbo"},
	{"is", "isl", "ice", "Icelandic"},
	{"io", "ido", "", "Ido"},
	{"ii", "iii", "", "Sichuan Yi"},
	{"", "ijo", "", "Ijo languages"},
	{"iu", "iku", "", "Inuktitut"},
	{"ie", "ile", "", "Interlingue"},
	{"", "ilo", "", "Iloko"},
	{"ia", "ina", "", "Interlingua"},
	{"", "inc", "", "Indic languages"},
	{"id", "ind", "", "Indonesian"},
	{"", "ine", "", "Indo-European languages"},
	{"", "inh", "", "Ingush"},
	{"ik", "ipk", "", "Inupiaq"},
	{"", "ira", "", "Iranian languages"},
	{"", "iro", "", "Iroquoian languages"},
	{"it", "ita", "", "Italian"},
	{"jv", "jav", "", "Javanese"},
	{"", "jbo", "", "Lojban"},
	{"ja", "jpn", "", "Japanese"},
	{"", "jpr", "", "Judeo-Persian"},
	{"", "jrb", "", "Judeo-Arabic"},
	{"", "kaa", "", "Kara-Kalpak"},
	{"", "kab", "", "Kabyle"},
	{"", "kac", "", "Kachin"},
	{"kl", "kal", "", "Kalaallisut"},
	{"", "kam", "", "Kamba"},
	{"kn", "kan", "", "Kannada"},
	{"", "kar", "", "Karen languages"},
	{"ks", "kas", "", "Kashmiri"},
	{"kr", "kau", "", "Kanuri"},
	{"", "kaw", "", "Kawi"},
	{"kk", "kaz", "", "Kazakh"},
	{"", "kbd", "", "Kabardian"},
	{"", "kha", "", "Khasi"},
	{"", "khi", "", "Khoisan languages"},
	{"km", "khm", "", "Central Khmer"},
	{"", "kho", "", "Khotanese"},
	{"ki", "kik", "", "Kikuyu"},
	{"rw", "kin", "", "Kinyarwanda"},
	{"ky", "kir", "", "Kirghiz"},
	{"", "kmb", "", "Kimbundu"},
	{"", "kok", "", "Konkani"},
	{"kv", "kom", "", "Komi"},
	{"kg", "kon", "", "Kongo"},
	{"ko", "kor", "", "Korean"},
	{"", "kos", "", "Kosraean"},
	{"", "kpe", "", "Kpelle"},
	{"", "krc", "", "Karachay-Balkar"},
	{"", "krl", "", "Karelian"},
	{"", "kro", "", "Kru languages"},
	{"", "kru", "", "Kurukh"},
	{"kj", "kua", "", "Kuanyama"},
	{"", "kum", "", "Kumyk"},
	{"ku", "kur", "", "Kurdish"},
	{"", "kut", "", "Kutenai"},
	{"", "lad", "", "Ladino"},
	{"", "lah", "", "Lahnda"},
	{"", "lam", "", "Lamba"},
	{"lo", "lao", "", "Lao"},
	{"la", "lat", "", "Latin"},
	{"lv", "lav", "", "Latvian"},
	{"", "lez", "", "Lezghian"},
	{"li", "lim", "", "Limburgan"},
	{"ln", "lin", "", "Lingala"},
	{"lt", "lit", "", "Lithuanian"},
	{"", "lol", "", "Mongo"},
	{"", "loz", "", "Lozi"},
	{"lb", "ltz", "", "Luxembourgish"},
	{"", "lua", "", "Luba-Lulua"},
	{"lu", "lub", "", "Luba-Katanga"},
	{"lg", "lug", "", "Ganda"},
	{"", "lui", "", "Luiseno"},
	{"", "lun", "", "Lunda"},
	{"", "luo", "", "Luo"},
	{"", "lus", "", "Lushai"},
	{"mk", "mkd", "mac", "Macedonian"},
	{"", "mad", "", "Madurese"},
	{"", "mag", "", "Magahi"},
	{"mh", "mah", "", "Marshallese"},
	{"", "mai", "", "Maithili"},
	{"", "mak", "", "Makasar"},
	{"ml", "mal", "", "Malayalam"},
	{"", "man", "", "Mandingo"},
	{"mi", "mri", "mao", "Maori"},
	{"", "map", "", "Austronesian languages"},
	{"mr", "mar", "", "Marathi"},
	{"", "mas", "", "Masai"},
	{"ms", "msa", "may", "Malay"},
	{"", "mdf", "", "Moksha"},
	{"", "mdr", "", "Mandar"},
	{"", "men", "", "Mende"},
	{"", "mga", "", "Middle Irish"},
	{"", "mic", "", "Mi'kmaq"},
	{"", "min", "", "Minangkabau"},
	{"", "mis", "", "Uncoded languages"},
	{"", "mkh", "", "Mon-Khmer languages"},
	{"mg", "mlg", "", "Malagasy"},
	{"mt", "mlt", "", "Maltese"},
	{"", "mnc", "", "Manchu"},
	{"", "mni", "", "Manipuri"},
	{"", "mno", "", "Manobo languages"},
	{"", "moh", "", "Mohawk"},
	{"mn", "mon", "", "Mongolian"},
	{"", "mos", "", "Mossi"},
	{"", "mul", "", "Multiple languages"},
	{"", "mun", "", "Munda languages"},
	{"", "mus", "", "Creek"},
	{"", "mwl", "", "Mirandese"},
	{"", "mwr", "", "Marwari"},
	{"", "myn", "", "Mayan languages"},
	{"", "myv", "", "Erzya"},
	{"", "nah", "", "Nahuatl languages"},
	{"", "nai", "", "North American Indian languages"},
	{"", "nap", "", "Neapolitan"},
	{"na", "nau", "", "Nauru"},
	{"nv", "nav", "", "Navajo"},
	{"nr", "nbl", "", "South Ndebele"},
	{"nd", "nde", "", "North Ndebele"},
	{"ng", "ndo", "", "Ndonga"},
	{"", "nds", "", "Low German"},
	{"ne", "nep", "", "Nepali"},
	{"", "new", "", "Nepal Bhasa"},
	{"", "nia", "", "Nias"},
	{"", "nic", "", "Niger-Kordofanian languages"},
	{"", "niu", "", "Niuean"},
	{"nn", "nno", "", "Norwegian Nynorsk"},
	{"nb", "nob", "", "Norwegian Bokmal"},
	{"", "nog", "", "Nogai"},
	{"", "non", "", "Old Norse"},
	{"no", "nor", "", "Norwegian"},
	{"", "nqo", "", "N'Ko"},
	{"", "nso", "", "Pedi"},
	{"", "nub", "", "Nubian languages"},
	{"", "nwc", "", "Classical Newari"},
	{"ny", "nya", "", "Chichewa"},
	{"", "nym", "", "Nyamwezi"},
	{"", "nyn", "", "Nyankole"},
	{"", "nyo", "", "Nyoro"},
	{"", "nzi", "", "Nzima"},
	{"oc", "oci", "", "Occitan"},
	{"oj", "oji", "", "Ojibwa"},
	{"or", "ori", "", "Oriya"},
	{"om", "orm", "", "Oromo"},
	{"", "osa", "", "Osage"},
	{"os", "oss", "", "Ossetian"},
	{"", "ota", "", "Ottoman Turkish"},
	{"", "oto", "", "Otomian languages"},
	{"", "paa", "", "Papuan languages"},
	{"", "pag", "", "Pangasinan"},
	{"", "pal", "", "Pahlavi"},
	{"", "pam", "", "Pampanga"},
	{"pa", "pan", "", "Panjabi"},
	{"", "pap", "", "Papiamento"},
	{"", "pau", "", "Palauan"},
	{"", "peo", "", "Old Persian"},
	{"fa", "fas", "per", "Persian"},
	{"", "phi", "", "Philippine languages"},
	{"", "phn", "", "Phoenician"},
	{"pi", "pli", "", "Pali"},
	{"pl", "pol", "", "Polish"},
	{"", "pon", "", "Pohnpeian"},
	{"pt", "por", "", "Portuguese"},
	{"", "pra", "", "Prakrit languages"},
	{"", "pro", "", "Old Provencal"},
	{"ps", "pus", "", "Pushto"},
	{"qu", "que", "", "Quechua"},
	{"", "raj", "", "Rajasthani"},
	{"", "rap", "", "Rapanui"},
	{"", "rar", "", "Rarotongan"},
	{"", "roa", "", "Romance languages"},
	{"rm", "roh", "", "Romansh"},
	{"", "rom", "", "Romany"},
	{"ro", "ron", "rum", "Romanian"},
	{"rn", "run", "", "Rundi"},
	{"", "rup", "", "Aromanian"},
	{"ru", "rus", "", "Russian"},
	{"", "sad", "", "Sandawe"},
	{"sg", "sag", "", "Sango"},
	{"", "sah", "", "Yakut"},
	{"", "sai", "", "South American Indian languages"},
	{"", "sal", "", "Salishan languages"},
	{"", "sam", "", "Samaritan Aramaic"},
	{"sa", "san", "", "Sanskrit"},
	{"", "sas", "", "Sasak"},
	{"", "sat", "", "Santali"},
	{"", "scn", "", "Sicilian"},
	{"", "sco", "", "Scots"},
	{"", "sel", "", "Selkup"},
	{"", "sem", "", "Semitic languages"},
	{"", "sga", "", "Old Irish"},
	{"", "sgn", "", "Sign languages"},
	{"", "shn", "", "Shan"},
	{"", "sid", "", "Sidamo"},
	{"si", "sin", "", "Sinhala"},
	{"", "sio", "", "Siouan languages"},
	{"", "sit", "", "Sino-Tibetan languages"},
	{"", "sla", "", "Slavic languages"},
	{"sk", "slk", "slo", "Slovak"},
	{"sl", "slv", "", "Slovenian"},
	{"", "sma", "", "Southern Sami"},
	{"se", "sme", "", "Northern Sami"},
	{"", "smi", "", "Sami languages"},
	{"", "smj", "", "Lule Sami"},
	{"", "smn", "", "Inari Sami"},
	{"sm", "smo", "", "Samoan"},
	{"", "sms", "", "Skolt Sami"},
	{"sn", "sna", "", "Shona"},
	{"sd", "snd", "", "Sindhi"},
	{"", "snk", "", "Soninke"},
	{"", "sog", "", "Sogdian"},
	{"so", "som", "", "Somali"},
	{"", "son", "", "Songhai languages"},
	{"st", "sot", "", "Southern Sotho"},
	{"es", "spa", "", "Spanish"},
	{"sc", "srd", "", "Sardinian"},
	{"", "srn", "", "Sranan Tongo"},
	{"sr", "srp", "", "Serbian"},
	{"", "srr", "", "Serer"},
	{"", "ssa", "", "Nilo-Saharan languages"},
	{"ss", "ssw", "", "Swati"},
	{"", "suk", "", "Sukuma"},
	{"su", "sun", "", "Sundanese"},
	{"", "sus", "", "Susu"},
	{"", "sux", "", "Sumerian"},
	{"sw", "swa", "", "Swahili"},
	{"sv", "swe", "", "Swedish"},
	{"", "syc", "", "Classical Syriac"},
	{"", "syr", "", "Syriac"},
	{"ty", "tah", "", "Tahitian"},
	{"", "tai", "", "Tai languages"},
	{"ta", "tam", "", "Tamil"},
	{"tt", "tat", "", "Tatar"},
	{"te", "tel", "", "Telugu"},
	{"", "tem", "", "Timne"},
	{"", "ter", "", "Tereno"},
	{"", "tet", "", "Tetum"},
	{"tg", "tgk", "", "Tajik"},
	{"tl", "tgl", "", "Tagalog"},
	{"th", "tha", "", "Thai"},
	{"bo", "bod", "tib", "Tibetan"},
	{"", "tig", "", "Tigre"},
	{"ti", "tir", "", "Tigrinya"},
	{"", "tiv", "", "Tiv"},
	{"", "tkl", "", "Tokelau"},
	{"", "tlh", "", "Klingon"},
	{"", "tli", "", "Tlingit"},
	{"", "tmh", "", "Tamashek"},
	{"", "tog", "", "Tonga (Nyasa)"},
	{"to", "ton", "", "Tonga (Tonga Islands)"},
	{"", "tpi", "", "Tok Pisin"},
	{"", "tsi", "", "Tsimshian"},
	{"tn", "tsn", "", "Tswana"},
	{"ts", "tso", "", "Tsonga"},
	{"tk", "tuk", "", "Turkmen"},
	{"", "tum", "", "Tumbuka"},
	{"", "tup", "", "Tupi languages"},
	{"tr", "tur", "", "Turkish"},
	{"", "tut", "", "Altaic languages"},
	{"", "tvl", "", "Tuvalu"},
	{"tw", "twi", "", "Twi"},
	{"", "tyv", "", "Tuvinian"},
	{"", "udm", "", "Udmurt"},
	{"", "uga", "", "Ugaritic"},
	{"ug", "uig", "", "Uighur"},
	{"uk", "ukr", "", "Ukrainian"},
	{"", "umb", "", "Umbundu"},
	{"", "und", "", "Undetermined"},
	{"ur", "urd", "", "Urdu"},
	{"uz", "uzb", "", "Uzbek"},
	{"", "vai", "", "Vai"},
	{"ve", "ven", "", "Venda"},
	{"vi", "vie", "", "Vietnamese"},
	{"vo", "vol", "", "Volapuk"},
	{"", "vot", "", "Votic"},
	{"", "wak", "", "Wakashan languages"},
	{"", "wal", "", "Wolaitta"},
	{"", "war", "", "Waray"},
	{"", "was", "", "Washo"},
	{"cy", "cym", "wel", "Welsh"},
	{"", "wen", "", "Sorbian languages"},
	{"wa", "wln", "", "Walloon"},
	{"wo", "wol", "", "Wolof"},
	{"", "xal", "", "Kalmyk"},
	{"xh", "xho", "", "Xhosa"},
	{"", "yao", "", "Yao"},
	{"", "yap", "", "Yapese"},
	{"yi", "yid", "", "Yiddish"},
	{"yo", "yor", "", "Yoruba"},
	{"", "ypk", "", "Yupik languages"},
	{"", "zap", "", "Zapotec"},
	{"", "zbl", "", "Blissymbols"},
	{"", "zen", "", "Zenaga"},
	{"", "zgh", "", "Standard Moroccan Tamazight"},
	{"za", "zha", "", "Zhuang"},
	{"", "znd", "", "Zande languages"},
	{"zu", "zul", "", "Zulu"},
	{"", "zun", "", "Zuni"},
	{"", "zxx", "", "No linguistic content"},
	{"", "zza", "", "Zaza"},
}
