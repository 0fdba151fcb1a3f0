package structmap

// UnsetPolicy controls when a field slot counts as unset for the
// default-returning and get-or-insert paths. Go structs are always fully
// initialized, so under the default policy no field is ever unset and those
// paths behave like plain Get.
type UnsetPolicy int

const (
	UnsetNever    UnsetPolicy = iota // All fields are always set; zero values count as set.
	UnsetNilValue                    // A nil pointer/map/slice/interface/chan/func value counts as unset.
)
