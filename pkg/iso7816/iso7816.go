/*
Package iso7816 implements the ISO/IEC 7816-4 command layer used to talk to
contact and contactless chips such as eMRTD (e-passport) ICs.

It provides Command and Response APDU encoding, CLA / INS decoding, Status Word
analysis, and a Client that absorbs the T=0 transport procedures (61XX and
6CXX) so that each logical command yields a single Trace.

# Reading a transparent EF

	cls, _ := iso7816.NewClass(0x00)
	client := iso7816.NewClient(card)

	trace, err := client.Send(iso7816.SelectEF(cls, 0x2F00))
	if err != nil {
	    return err
	}
	if err := trace.Err(); err != nil {
	    return err // *iso7816.StatusError
	}

	cmd, _ := iso7816.ReadBinary(cls, 0, iso7816.MaxShortLe)
	trace, err = client.Send(cmd)
	...
	res, _ := iso7816.NewReadBinaryResult(trace)
	fmt.Println(res.Describe())

# Status Words

Every response ends with a 2-byte Status Word (SW).
  - 0x9000: Success (OK).
  - 0x61XX: Success, but response data is still available (XX bytes).
  - 0x6CXX: Error, wrong length expectation (XX is the correct length).
  - Other: Various error conditions.
*/
package iso7816
