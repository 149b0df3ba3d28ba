package streams

import "github.com/fxamacker/cbor/v2"

// deterministic encoding: the same recording always produces the same bytes
var encMode cbor.EncMode

var decMode cbor.DecMode

func init() {
	var err error
	encOptions := cbor.CoreDetEncOptions()
	encOptions.Time = cbor.TimeRFC3339Nano
	encMode, err = encOptions.EncMode()
	if err != nil {
		panic("streams: CBOR encoder initialization failed: " + err.Error())
	}
	decMode, err = cbor.DecOptions{}.DecMode()
	if err != nil {
		panic("streams: CBOR decoder initialization failed: " + err.Error())
	}
}
